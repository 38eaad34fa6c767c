package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// UpdateFieldKind names the document field an update mutates.
type UpdateFieldKind uint8

const (
	FieldOwner UpdateFieldKind = iota + 1
	FieldThreshold
	FieldIdentityInfo
	FieldContentMetadata
	FieldCopyrightInfo
	FieldAccessRules
	FieldAsset
	FieldDataSource
)

var fieldNames = map[UpdateFieldKind]string{
	FieldOwner:           "owner",
	FieldThreshold:       "threshold",
	FieldIdentityInfo:    "identity_info",
	FieldContentMetadata: "content_metadata",
	FieldCopyrightInfo:   "copyright_info",
	FieldAccessRules:     "access_rules",
	FieldAsset:           "asset",
	FieldDataSource:      "data_source",
}

func (k UpdateFieldKind) String() string {
	if name, ok := fieldNames[k]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", uint8(k))
}

// UpdateDocField is a single-field mutation. Exactly the member matching
// Kind is set; a nil pointer on an optional field clears it.
type UpdateDocField struct {
	Kind            UpdateFieldKind  `json:"kind"`
	Owner           *WeightedDID     `json:"owner,omitempty"`
	Threshold       uint16           `json:"threshold,omitempty"`
	IdentityInfo    *IdentityInfo    `json:"identity_info,omitempty"`
	ContentMetadata *ContentMetadata `json:"content_metadata,omitempty"`
	CopyrightInfo   *CopyrightInfo   `json:"copyright_info,omitempty"`
	AccessRules     []AccessRule     `json:"access_rules,omitempty"`
	Asset           *Asset           `json:"asset,omitempty"`
	DataSource      *DataSource      `json:"data_source,omitempty"`
}

// OwnerUpdate upserts an owner; weight 0 removes it
func OwnerUpdate(did string, weight uint16) UpdateDocField {
	return UpdateDocField{Kind: FieldOwner, Owner: &WeightedDID{DID: did, Weight: weight}}
}

// ThresholdUpdate sets the owner threshold
func ThresholdUpdate(threshold uint16) UpdateDocField {
	return UpdateDocField{Kind: FieldThreshold, Threshold: threshold}
}

// ValidateBasic checks that only the member selected by Kind is populated
func (f UpdateDocField) ValidateBasic() error {
	if _, ok := fieldNames[f.Kind]; !ok {
		return fmt.Errorf("unknown update field: %d", f.Kind)
	}
	set := []struct {
		kind    UpdateFieldKind
		present bool
	}{
		{FieldOwner, f.Owner != nil},
		{FieldThreshold, f.Threshold != 0},
		{FieldIdentityInfo, f.IdentityInfo != nil},
		{FieldContentMetadata, f.ContentMetadata != nil},
		{FieldCopyrightInfo, f.CopyrightInfo != nil},
		{FieldAccessRules, f.AccessRules != nil},
		{FieldAsset, f.Asset != nil},
		{FieldDataSource, f.DataSource != nil},
	}
	for _, m := range set {
		if m.present && m.kind != f.Kind {
			return fmt.Errorf("%s update carries a %s value", f.Kind, m.kind)
		}
	}
	switch f.Kind {
	case FieldOwner:
		if f.Owner == nil || f.Owner.DID == "" {
			return fmt.Errorf("owner update requires a did")
		}
	case FieldThreshold:
		if f.Threshold == 0 {
			return fmt.Errorf("threshold must be positive")
		}
	}
	return nil
}

// Equal compares two mutations structurally
func (f UpdateDocField) Equal(o UpdateDocField) bool {
	a, errA := json.Marshal(f)
	b, errB := json.Marshal(o)
	return errA == nil && errB == nil && bytes.Equal(a, b)
}

// Apply returns a copy of d with f applied. Proofs are carried over
// unchanged; the caller decides what they become.
func (d URAuthDoc) Apply(f UpdateDocField, maxOwners uint32) (URAuthDoc, error) {
	out := d
	out.MultiOwnerDID = d.MultiOwnerDID.clone()
	out.AccessRules = append([]AccessRule(nil), d.AccessRules...)
	out.Proofs = append([]Proof(nil), d.Proofs...)

	switch f.Kind {
	case FieldOwner:
		out.MultiOwnerDID.DIDs = upsertOwner(out.MultiOwnerDID.DIDs, *f.Owner)
	case FieldThreshold:
		out.MultiOwnerDID.Threshold = f.Threshold
	case FieldIdentityInfo:
		out.IdentityInfo = f.IdentityInfo
	case FieldContentMetadata:
		out.ContentMetadata = f.ContentMetadata
	case FieldCopyrightInfo:
		out.CopyrightInfo = f.CopyrightInfo
	case FieldAccessRules:
		out.AccessRules = append([]AccessRule(nil), f.AccessRules...)
	case FieldAsset:
		out.Asset = f.Asset
	case FieldDataSource:
		out.DataSource = f.DataSource
	default:
		return d, fmt.Errorf("unknown update field: %d", f.Kind)
	}

	if err := out.MultiOwnerDID.Validate(maxOwners); err != nil {
		return d, err
	}
	return out, nil
}

func upsertOwner(owners []WeightedDID, owner WeightedDID) []WeightedDID {
	out := make([]WeightedDID, 0, len(owners)+1)
	found := false
	for _, o := range owners {
		if o.DID != owner.DID {
			out = append(out, o)
			continue
		}
		found = true
		if owner.Weight > 0 {
			out = append(out, owner)
		}
	}
	if !found && owner.Weight > 0 {
		out = append(out, owner)
	}
	return out
}

// UpdateStatusKind is the state of the update workflow for a document.
type UpdateStatusKind uint8

const (
	UpdateAvailable UpdateStatusKind = iota
	UpdateInProgress
)

func (k UpdateStatusKind) String() string {
	if k == UpdateInProgress {
		return "in_progress"
	}
	return "available"
}

// UpdateDocStatus tracks the single in-flight mutation of a document.
type UpdateDocStatus struct {
	Kind               UpdateStatusKind `json:"kind"`
	Field              *UpdateDocField  `json:"field,omitempty"`
	RemainingThreshold uint16           `json:"remaining_threshold"`
	Proofs             []Proof          `json:"proofs,omitempty"`
}

// AvailableStatus is the idle workflow state
func AvailableStatus() UpdateDocStatus {
	return UpdateDocStatus{Kind: UpdateAvailable}
}

// Begin moves an available status into progress for field
func (s *UpdateDocStatus) Begin(field UpdateDocField, threshold uint16) error {
	switch s.Kind {
	case UpdateAvailable:
		f := field
		*s = UpdateDocStatus{
			Kind:               UpdateInProgress,
			Field:              &f,
			RemainingThreshold: threshold,
		}
		return nil
	case UpdateInProgress:
		if s.Field == nil || !s.Field.Equal(field) {
			return fmt.Errorf("%s update already in progress", s.fieldName())
		}
		return nil
	default:
		return fmt.Errorf("unknown update status: %d", s.Kind)
	}
}

// HasProof reports whether did already signed this round
func (s UpdateDocStatus) HasProof(did string) bool {
	for _, p := range s.Proofs {
		if p.DID == did {
			return true
		}
	}
	return false
}

// AddProof appends a proof and subtracts weight from the remaining threshold,
// saturating at zero. It reports whether the threshold has been met.
func (s *UpdateDocStatus) AddProof(p Proof, weight uint16) bool {
	s.Proofs = append(s.Proofs, p)
	if weight >= s.RemainingThreshold {
		s.RemainingThreshold = 0
	} else {
		s.RemainingThreshold -= weight
	}
	return s.RemainingThreshold == 0
}

func (s UpdateDocStatus) fieldName() string {
	if s.Field == nil {
		return "unknown"
	}
	return s.Field.Kind.String()
}
