package temporalx

import "github.com/yungbote/skillgraph-backend/internal/platform/envutil"

type Config struct {
	Address   string
	Namespace string
	TaskQueue string

	ClientCertPath string
	ClientKeyPath  string
	ClientCAPath   string
}

func LoadConfig() Config {
	return Config{
		Address:   envutil.String("TEMPORAL_ADDRESS", ""),
		Namespace: envutil.String("TEMPORAL_NAMESPACE", "skillgraph"),
		TaskQueue: envutil.String("TEMPORAL_TASK_QUEUE", "skillgraph"),

		ClientCertPath: envutil.String("TEMPORAL_CLIENT_CERT_PATH", ""),
		ClientKeyPath:  envutil.String("TEMPORAL_CLIENT_KEY_PATH", ""),
		ClientCAPath:   envutil.String("TEMPORAL_CLIENT_CA_PATH", ""),
	}
}

// Enabled reports whether a Temporal address is configured.
func (c Config) Enabled() bool { return c.Address != "" }
