package logging

import (
	"log/slog"
	"regexp"

	"github.com/m-mizutani/masq"
)

var (
	jwtPattern    = regexp.MustCompile(`^eyJ[A-Za-z0-9_-]*\.eyJ[A-Za-z0-9_-]*\.[A-Za-z0-9_-]*$`)
	bearerPattern = regexp.MustCompile(`(?i)^bearer\s+.+$`)
	basicPattern  = regexp.MustCompile(`(?i)^basic\s+.+$`)
)

// credentialFields are attribute names whose values are never logged.
var credentialFields = []string{
	"password", "secret", "token", "auth", "authorization", "bearer",
	"apiKey", "apikey", "api_key",
	"accessToken", "access_token", "refreshToken", "refresh_token",
	"credential", "credentials", "cookie", "session",
	"privateKey", "private_key", "secretKey", "secret_key",
}

// contactFields hold what visitors type into the quote form.
var contactFields = []string{"email", "Email", "phone", "Phone", "contact_email"}

// DefaultRedactOptions masks credentials and the contact details visitors
// leave on quote requests.
func DefaultRedactOptions() []masq.Option {
	opts := make([]masq.Option, 0, len(credentialFields)+len(contactFields)+5)

	for _, name := range credentialFields {
		opts = append(opts, masq.WithFieldName(name))
	}
	for _, name := range contactFields {
		opts = append(opts, masq.WithFieldName(name))
	}

	return append(opts,
		masq.WithFieldPrefix("secret"),
		masq.WithFieldPrefix("private"),
		masq.WithRegex(jwtPattern),
		masq.WithRegex(bearerPattern),
		masq.WithRegex(basicPattern),
	)
}

// NewReplaceAttr returns a slog ReplaceAttr that applies DefaultRedactOptions
// plus opts.
func NewReplaceAttr(opts ...masq.Option) func(groups []string, a slog.Attr) slog.Attr {
	return masq.New(append(DefaultRedactOptions(), opts...)...)
}
