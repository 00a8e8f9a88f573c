package cookie

// Config holds the cookie secrets and site-wide attributes. The first secret
// signs and encrypts; the rest are accepted on read for rotation.
type Config struct {
	Secrets []string `env:"COOKIE_SECRETS,required" envSeparator:","`
	Domain  string   `env:"COOKIE_DOMAIN"`
	Secure  bool     `env:"COOKIE_SECURE" envDefault:"false"`
}

// NewFromConfig builds a Manager from cfg. Extra options override cfg.
func NewFromConfig(cfg Config, opts ...Option) (*Manager, error) {
	base := []Option{WithSecure(cfg.Secure)}
	if cfg.Domain != "" {
		base = append(base, WithDomain(cfg.Domain))
	}
	return New(cfg.Secrets, append(base, opts...)...)
}
