package config

func GetDefault() Config {
	return Config{
		TagPrefix:  "rel@",
		LedgerPath: "release-ledger.yaml",
		ForgeURL:   "https://api.github.com",
	}
}
