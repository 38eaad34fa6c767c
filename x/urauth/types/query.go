package types

type QueryParamsRequest struct{}

type QueryParamsResponse struct {
	Params Params `json:"params"`
}

type QueryDocumentRequest struct {
	URI string `json:"uri"`
}

type QueryDocumentResponse struct {
	URI string    `json:"uri"`
	Doc URAuthDoc `json:"doc"`
}

type QueryPendingRequest struct {
	URI string `json:"uri"`
}

type QueryPendingResponse struct {
	Metadata  RequestMetadata        `json:"metadata"`
	Challenge []byte                 `json:"challenge"`
	Tally     VerificationSubmission `json:"tally"`
}

type QueryUpdateStatusRequest struct {
	URI string `json:"uri"`
}

type QueryUpdateStatusResponse struct {
	URI    string          `json:"uri"`
	DocID  DocID           `json:"doc_id"`
	Status UpdateDocStatus `json:"status"`
}

type QueryOracleMembersRequest struct{}

type QueryOracleMembersResponse struct {
	Members []string `json:"members"`
}

type QueryURIPatternsRequest struct{}

type QueryURIPatternsResponse struct {
	Patterns []URIPattern `json:"patterns"`
}

type QueryNonceRequest struct {
	// Account is the hex encoded 32 byte account
	Account string `json:"account"`
}

type QueryNonceResponse struct {
	Nonce uint64 `json:"nonce"`
}

type QueryAccessRuleRequest struct {
	// URI is the registered uri holding the rules
	URI       string    `json:"uri"`
	ClaimType ClaimType `json:"claim_type"`
	// Target is the uri being accessed
	Target    string `json:"target"`
	UserAgent string `json:"user_agent"`
}

type QueryAccessRuleResponse struct {
	Found      bool       `json:"found"`
	AccessRule AccessRule `json:"access_rule"`
	Rule       Rule       `json:"rule"`
}
