package bankline

type Config struct {
	Database struct {
		ConnectionString string `yaml:"conn_str"`
	} `yaml:"database"`
	Server struct {
		ListenAddr string `yaml:"listen_addr"`
		AdminAddr  string `yaml:"admin_addr"`
	} `yaml:"server"`
	Limits struct {
		InFlightPerOp    int64 `yaml:"in_flight_per_op"`
		AcquireTimeoutMS int   `yaml:"acquire_timeout_ms"`
	} `yaml:"limits"`
}
