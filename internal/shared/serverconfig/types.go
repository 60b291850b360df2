package serverconfig

type Config struct {
	MySQL      MySQLConfig      `yaml:"mysql" mapstructure:"mysql"`
	MongoDB    MongoDBConfig    `yaml:"mongodb" mapstructure:"mongodb"`
	HTTPServer HTTPServerConfig `yaml:"httpserver" mapstructure:"httpserver"`
	WSServer   WSServerConfig   `yaml:"wsserver" mapstructure:"wsserver"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
	Game       GameConfig       `yaml:"game" mapstructure:"game"`
	JWTSecret  string           `yaml:"jwt_secret" mapstructure:"jwt_secret"`
}

type MySQLConfig struct {
	Host     string `yaml:"host" mapstructure:"host"`
	Port     int    `yaml:"port" mapstructure:"port"`
	User     string `yaml:"user" mapstructure:"user"`
	Password string `yaml:"password" mapstructure:"password"`
	DBName   string `yaml:"dbname" mapstructure:"dbname"`
	Charset  string `yaml:"charset" mapstructure:"charset"`
	MaxIdle  int    `yaml:"max_idle" mapstructure:"max_idle"`
	MaxConn  int    `yaml:"max_conn" mapstructure:"max_conn"`
}

type MongoDBConfig struct {
	URI             string `yaml:"uri" mapstructure:"uri"`
	Database        string `yaml:"database" mapstructure:"database"`
	ConnectTimeoutS int    `yaml:"connect_timeout_s" mapstructure:"connect_timeout_s"`
}

type HTTPServerConfig struct {
	Host string `yaml:"host" mapstructure:"host"`
	Port int    `yaml:"port" mapstructure:"port"`
}

type WSServerConfig struct {
	NeedSecret bool `yaml:"need_secret" mapstructure:"need_secret"`
}

type LogConfig struct {
	FileDir    string `yaml:"file_dir" mapstructure:"file_dir"`
	MaxSize    int    `yaml:"max_size" mapstructure:"max_size"` // MB
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAge     int    `yaml:"max_age" mapstructure:"max_age"` // days
	Compress   bool   `yaml:"compress" mapstructure:"compress"`
	Level      string `yaml:"level" mapstructure:"level"` // debug/info/warn/error...
	Dev        bool   `yaml:"dev" mapstructure:"dev"`
}

// GameConfig 是模拟引擎的数值/节奏配置。
// 周期相关字段为 0 时使用代码内默认值（见 ticker 包）。
type GameConfig struct {
	AccrualIntervalS      int `yaml:"accrual_interval_s" mapstructure:"accrual_interval_s"`
	ConstructionIntervalS int `yaml:"construction_interval_s" mapstructure:"construction_interval_s"`
	PowerIntervalS        int `yaml:"power_interval_s" mapstructure:"power_interval_s"`
	CleanupIntervalS      int `yaml:"cleanup_interval_s" mapstructure:"cleanup_interval_s"`

	ProtectionWindowS int `yaml:"protection_window_s" mapstructure:"protection_window_s"`
	ActiveWindowH     int `yaml:"active_window_h" mapstructure:"active_window_h"`

	ChatHistoryCap        int `yaml:"chat_history_cap" mapstructure:"chat_history_cap"`
	MessageRetentionDays  int `yaml:"message_retention_days" mapstructure:"message_retention_days"`
	RaidRetentionDays     int `yaml:"raid_retention_days" mapstructure:"raid_retention_days"`
	BuildRetentionDays    int `yaml:"build_retention_days" mapstructure:"build_retention_days"`
	TradeDefaultDurationS int `yaml:"trade_default_duration_s" mapstructure:"trade_default_duration_s"`
}
