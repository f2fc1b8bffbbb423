package validators

import (
	"net"
	"strings"
)

// IsEmailDomainValid checks that the address's domain actually resolves,
// via MX first and A/AAAA as a fallback. Synthetic local addresses pass
// without a lookup.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]

	if domain == "local" || domain == "localhost" {
		return true
	}

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := net.LookupIP(domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
