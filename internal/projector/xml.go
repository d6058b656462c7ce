package projector

import "encoding/xml"

type loggerXML struct {
	Level    LogLevel `xml:"level"`
	Log      string   `xml:"log"`
	ErrorLog string   `xml:"errorlog"`
	Size     string   `xml:"size"`
	Count    int      `xml:"count"`
}

type hostPortXML struct {
	Host string `xml:"host"`
	Port uint16 `xml:"port"`
}

type keeperXML struct {
	XMLName      xml.Name        `xml:"clickhouse"`
	Logger       loggerXML       `xml:"logger"`
	ListenHost   string          `xml:"listen_host"`
	KeeperServer keeperServerXML `xml:"keeper_server"`
}

type keeperServerXML struct {
	EnableReconfiguration bool                    `xml:"enable_reconfiguration"`
	TCPPort               uint16                  `xml:"tcp_port"`
	ServerID              int32                   `xml:"server_id"`
	LogStoragePath        string                  `xml:"log_storage_path"`
	SnapshotStoragePath   string                  `xml:"snapshot_storage_path"`
	CoordinationSettings  coordinationSettingsXML `xml:"coordination_settings"`
	RaftConfiguration     []raftServerXML         `xml:"raft_configuration>server"`
}

type coordinationSettingsXML struct {
	OperationTimeoutMS int64    `xml:"operation_timeout_ms"`
	SessionTimeoutMS   int64    `xml:"session_timeout_ms"`
	RaftLogsLevel      LogLevel `xml:"raft_logs_level"`
}

type raftServerXML struct {
	ID       int32  `xml:"id"`
	Hostname string `xml:"hostname"`
	Port     uint16 `xml:"port"`
}

type serverXML struct {
	XMLName             xml.Name              `xml:"clickhouse"`
	Logger              loggerXML             `xml:"logger"`
	Path                string                `xml:"path"`
	Profiles            profilesXML           `xml:"profiles"`
	Users               usersXML              `xml:"users"`
	Quotas              quotasXML             `xml:"quotas"`
	UserFilesPath       string                `xml:"user_files_path"`
	DefaultProfile      string                `xml:"default_profile"`
	FormatSchemaPath    string                `xml:"format_schema_path"`
	DisplayName         string                `xml:"display_name"`
	ListenHost          string                `xml:"listen_host"`
	HTTPPort            uint16                `xml:"http_port"`
	TCPPort             uint16                `xml:"tcp_port"`
	InterserverHTTPPort uint16                `xml:"interserver_http_port"`
	InterserverHTTPHost string                `xml:"interserver_http_host"`
	DistributedDDL      distributedDDLXML     `xml:"distributed_ddl"`
	Macros              macrosXML             `xml:"macros"`
	RemoteServers       remoteServersXML      `xml:"remote_servers"`
	ZooKeeper           []hostPortXML         `xml:"zookeeper>node"`
	OpenTelemetrySpans  openTelemetrySpansXML `xml:"opentelemetry_span_log"`
	MetricLog           metricLogXML          `xml:"metric_log"`
	AsyncMetricLog      metricLogXML          `xml:"asynchronous_metric_log"`
}

type profilesXML struct {
	Default struct {
		OpenTelemetryStartTraceProbability int    `xml:"opentelemetry_start_trace_probability"`
		LoadBalancing                      string `xml:"load_balancing"`
	} `xml:"default"`
}

type usersXML struct {
	Default struct {
		Password string   `xml:"password"`
		Networks []string `xml:"networks>ip"`
		Profile  string   `xml:"profile"`
		Quota    string   `xml:"quota"`
	} `xml:"default"`
}

type quotasXML struct {
	Default struct {
		Interval struct {
			Duration      int `xml:"duration"`
			Queries       int `xml:"queries"`
			Errors        int `xml:"errors"`
			ResultRows    int `xml:"result_rows"`
			ReadRows      int `xml:"read_rows"`
			ExecutionTime int `xml:"execution_time"`
		} `xml:"interval"`
	} `xml:"default"`
}

type distributedDDLXML struct {
	TaskMaxLifetime    int `xml:"task_max_lifetime"`
	CleanupDelayPeriod int `xml:"cleanup_delay_period"`
	MaxTasksInQueue    int `xml:"max_tasks_in_queue"`
}

type macrosXML struct {
	Shard   int    `xml:"shard"`
	Replica int32  `xml:"replica"`
	Cluster string `xml:"cluster"`
}

type remoteServersXML struct {
	Replace bool       `xml:"replace,attr"`
	Cluster clusterXML `xml:",any"`
}

type clusterXML struct {
	XMLName xml.Name
	Secret  string   `xml:"secret"`
	Shard   shardXML `xml:"shard"`
}

type shardXML struct {
	InternalReplication bool          `xml:"internal_replication"`
	Replicas            []hostPortXML `xml:"replica"`
}

type openTelemetrySpansXML struct {
	Engine                   string `xml:"engine"`
	Database                 string `xml:"database"`
	Table                    string `xml:"table"`
	FlushIntervalMillisecond int    `xml:"flush_interval_milliseconds"`
}

type metricLogXML struct {
	Database                     string `xml:"database"`
	Table                        string `xml:"table"`
	FlushIntervalMilliseconds    int    `xml:"flush_interval_milliseconds"`
	CollectIntervalMilliseconds  int    `xml:"collect_interval_milliseconds"`
	MaxSizeRows                  int    `xml:"max_size_rows"`
	ReservedSizeRows             int    `xml:"reserved_size_rows"`
	BufferSizeRowsFlushThreshold int    `xml:"buffer_size_rows_flush_threshold"`
	FlushOnCrash                 bool   `xml:"flush_on_crash"`
}

func newMetricLogXML(table string) metricLogXML {
	return metricLogXML{
		Database:                     "system",
		Table:                        table,
		FlushIntervalMilliseconds:    7500,
		CollectIntervalMilliseconds:  1000,
		MaxSizeRows:                  1048576,
		ReservedSizeRows:             8192,
		BufferSizeRowsFlushThreshold: 524288,
	}
}
