package models

import "encoding/json"

// SendRequest is the payload accepted by POST /mail-sender/send.
//
// Parameters is the raw JSON value tree handed to the template renderer.
// QRBillParams is kept as raw bytes: the service never interprets it, it is
// forwarded verbatim to the QR bill generator.
type SendRequest struct {
	TemplateName string          `json:"template_name"`
	EmailAddress string          `json:"email_address"`
	Subject      string          `json:"subject"`
	Parameters   map[string]any  `json:"parameters"`
	ICSName      *string         `json:"ics_name"`
	QRBillParams json.RawMessage `json:"qrbill_params"`
}

// WantsQRBill reports whether the request asks for a generated QR bill
// attachment. JSON null decodes into a non-empty RawMessage, so it has to
// be checked explicitly.
func (r *SendRequest) WantsQRBill() bool {
	return len(r.QRBillParams) > 0 && string(r.QRBillParams) != "null"
}
