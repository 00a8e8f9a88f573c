package httpserver

import "time"

type Config struct {
	Addr              string        `env:"HTTP_ADDR" envDefault:":3000"`
	ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" envDefault:"10s"`
	ReadTimeout       time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout      time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
	IdleTimeout       time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"120s"`
	ShutdownTimeout   time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

func defaultConfig() Config {
	return Config{
		Addr:              ":3000",
		ReadHeaderTimeout: 10 * time.Second,
		ShutdownTimeout:   10 * time.Second,
	}
}

// merge overlays the non-zero fields of o onto c.
func (c Config) merge(o Config) Config {
	if o.Addr != "" {
		c.Addr = o.Addr
	}
	if o.ReadHeaderTimeout > 0 {
		c.ReadHeaderTimeout = o.ReadHeaderTimeout
	}
	if o.ReadTimeout > 0 {
		c.ReadTimeout = o.ReadTimeout
	}
	if o.WriteTimeout > 0 {
		c.WriteTimeout = o.WriteTimeout
	}
	if o.IdleTimeout > 0 {
		c.IdleTimeout = o.IdleTimeout
	}
	if o.ShutdownTimeout > 0 {
		c.ShutdownTimeout = o.ShutdownTimeout
	}
	return c
}

// NewFromConfig creates a Server from cfg. Zero values keep the defaults.
func NewFromConfig(cfg Config, opts ...Option) *Server {
	return New(append([]Option{func(s *settings) { s.cfg = s.cfg.merge(cfg) }}, opts...)...)
}
