package mongo

import "time"

// Config represents the configuration for the database.
type Config struct {
	ConnectionURL          string        `env:"MONGODB_URL,required"`                             // ConnectionURL is the URL of the database.
	DatabaseName           string        `env:"MONGODB_DB_NAME" envDefault:"book_db"`             // DatabaseName is the logical database holding users and books.
	ConnectTimeout         time.Duration `env:"MONGODB_CONNECT_TIMEOUT" envDefault:"10s"`         // ConnectTimeout bounds establishing a single connection.
	ServerSelectionTimeout time.Duration `env:"MONGODB_SERVER_SELECTION_TIMEOUT" envDefault:"5s"` // ServerSelectionTimeout bounds picking a server for an operation.
	OperationTimeout       time.Duration `env:"MONGODB_OPERATION_TIMEOUT" envDefault:"30s"`       // OperationTimeout bounds a single operation when the context has no deadline.
	MaxPoolSize            uint64        `env:"MONGODB_MAX_POOL_SIZE" envDefault:"10"`            // MaxPoolSize is the maximum number of pooled connections.
	MinPoolSize            uint64        `env:"MONGODB_MIN_POOL_SIZE" envDefault:"1"`             // MinPoolSize is the minimum number of pooled connections.
	MaxConnIdleTime        time.Duration `env:"MONGODB_MAX_CONN_IDLE_TIME" envDefault:"300s"`     // MaxConnIdleTime is how long an idle connection is kept.
	DirectConnection       bool          `env:"MONGODB_DIRECT_CONNECTION" envDefault:"true"`      // DirectConnection disables topology discovery.
	TLS                    bool          `env:"MONGODB_TLS" envDefault:"false"`                   // TLS forces an encrypted connection.
	RetryWrites            bool          `env:"MONGODB_RETRY_WRITES" envDefault:"true"`           // RetryWrites specifies whether to retry write operations.
	RetryReads             bool          `env:"MONGODB_RETRY_READS" envDefault:"true"`            // RetryReads specifies whether to retry read operations.
	RetryAttempts          int           `env:"MONGODB_RETRY_ATTEMPTS" envDefault:"3"`            // RetryAttempts is the number of attempts to connect.
	RetryInterval          time.Duration `env:"MONGODB_RETRY_INTERVAL" envDefault:"2s"`           // RetryInterval is the pause between attempts.
}
