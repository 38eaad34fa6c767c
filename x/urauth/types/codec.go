package types

import (
	"encoding/json"

	collcodec "cosmossdk.io/collections/codec"
)

// jsonValueCodec stores values as their JSON encoding.
type jsonValueCodec[T any] struct {
	name string
}

// NewJSONValueCodec returns a collections value codec for T
func NewJSONValueCodec[T any](name string) collcodec.ValueCodec[T] {
	return jsonValueCodec[T]{name: name}
}

func (c jsonValueCodec[T]) Encode(value T) ([]byte, error) {
	return json.Marshal(value)
}

func (c jsonValueCodec[T]) Decode(b []byte) (T, error) {
	var v T
	err := json.Unmarshal(b, &v)
	return v, err
}

func (c jsonValueCodec[T]) EncodeJSON(value T) ([]byte, error) {
	return c.Encode(value)
}

func (c jsonValueCodec[T]) DecodeJSON(b []byte) (T, error) {
	return c.Decode(b)
}

func (c jsonValueCodec[T]) Stringify(value T) string {
	bz, err := json.Marshal(value)
	if err != nil {
		return err.Error()
	}
	return string(bz)
}

func (c jsonValueCodec[T]) ValueType() string {
	return ModuleName + "/" + c.name
}

// Value codecs for module state
var (
	ParamsValue          = NewJSONValueCodec[Params]("params")
	URAuthDocValue       = NewJSONValueCodec[URAuthDoc]("urauth_doc")
	RequestMetadataValue = NewJSONValueCodec[RequestMetadata]("request_metadata")
	SubmissionValue      = NewJSONValueCodec[VerificationSubmission]("verification_submission")
	UpdateStatusValue    = NewJSONValueCodec[UpdateDocStatus]("update_doc_status")
)
