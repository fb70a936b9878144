package config

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "DOCSAI_DB_DSN"
	EnvDBHost = "DOCSAI_DB_HOST"
	EnvDBUser = "DOCSAI_DB_USER"
	EnvDBName = "DOCSAI_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
