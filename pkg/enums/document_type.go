package enums

import "fmt"

// DocumentType identifies which form schema a document uses.
type DocumentType string

const (
	DocumentTypeNDA                  DocumentType = "nda"
	DocumentTypeEmploymentContract   DocumentType = "employment_contract"
	DocumentTypePartnershipAgreement DocumentType = "partnership_agreement"
	DocumentTypeRentAgreement        DocumentType = "rent_agreement"
	DocumentTypeInvoice              DocumentType = "invoice"
	DocumentTypeConsultingContract   DocumentType = "consulting_contract"
	DocumentTypeBusinessContract     DocumentType = "business_contract"
	DocumentTypeLegalNotice          DocumentType = "legal_notice"
)

var validDocumentTypes = []DocumentType{
	DocumentTypeNDA,
	DocumentTypeEmploymentContract,
	DocumentTypePartnershipAgreement,
	DocumentTypeRentAgreement,
	DocumentTypeInvoice,
	DocumentTypeConsultingContract,
	DocumentTypeBusinessContract,
	DocumentTypeLegalNotice,
}

// String implements fmt.Stringer.
func (d DocumentType) String() string {
	return string(d)
}

// IsValid reports whether the value is known.
func (d DocumentType) IsValid() bool {
	for _, candidate := range validDocumentTypes {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseDocumentType converts raw input into a DocumentType.
func ParseDocumentType(value string) (DocumentType, error) {
	for _, candidate := range validDocumentTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid document type %q", value)
}
