package model

import "time"

// Mail-security record markers.
const (
	// SPFMarker identifies an SPF policy in a TXT record.
	SPFMarker = "v=spf1"

	// DMARCMarker identifies a DMARC policy in a _dmarc TXT record.
	DMARCMarker = "v=DMARC1"
)

// DomainProfile describes the trust signals of an email domain.
//
// Invariants: HasSPF is true only if some TXT record contains SPFMarker.
// HasDMARC is true only if a _dmarc.<domain> TXT record contains DMARCMarker.
type DomainProfile struct {
	Domain string `json:"domain"`

	// RegistrationDate is the earliest creation date WHOIS reported.
	RegistrationDate *time.Time `json:"registration_date,omitempty"`

	Organization string `json:"organization,omitempty"`
	Country      string `json:"country,omitempty"`
	Registrar    string `json:"registrar,omitempty"`

	// MXRecords are mail exchanger hosts ordered by preference.
	MXRecords  []string `json:"mx_records"`
	TXTRecords []string `json:"txt_records"`

	SPFRecord   string `json:"spf_record,omitempty"`
	DMARCRecord string `json:"dmarc_record,omitempty"`
	HasSPF      bool   `json:"has_spf"`
	HasDMARC    bool   `json:"has_dmarc"`

	// WhoisError is set when the registration lookup failed.
	WhoisError *ProbeError `json:"whois_error,omitempty"`
}

// AgeDays returns whole days between registration and now.
// The second return value is false when the registration date is unknown.
func (d DomainProfile) AgeDays(now time.Time) (int, bool) {
	if d.RegistrationDate == nil {
		return 0, false
	}
	return int(now.Sub(*d.RegistrationDate).Hours() / 24), true
}

// WhoisFailed reports whether the registration lookup failed.
func (d DomainProfile) WhoisFailed() bool {
	return d.WhoisError != nil
}
