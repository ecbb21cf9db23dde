package validators

import "testing"

func TestEmailDomainResolvesRejectsMalformed(t *testing.T) {
	cases := []string{
		"",
		"plainaddress",
		"@example.com",
		"user@",
	}
	for _, email := range cases {
		if EmailDomainResolves(email) {
			t.Errorf("EmailDomainResolves(%q) = true, want false", email)
		}
	}
}
