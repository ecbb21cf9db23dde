package validators

import (
	"net"
	"strings"
)

// EmailDomainResolves reports whether the address has a domain that
// resolves to a mail exchanger, falling back to a plain A/AAAA lookup
// for domains that receive mail on their apex record.
func EmailDomainResolves(email string) bool {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}
	ips, err := net.LookupIP(domain)
	return err == nil && len(ips) > 0
}
