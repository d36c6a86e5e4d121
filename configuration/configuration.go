package configuration

type Configuration struct {
	HttpAddr string `usage:"HTTP address"`
	Dir      string `usage:"data directory"`
	Statics  string `usage:"statics directory, empty serves the embedded site"`

	AdminKey string `usage:"API key required by /v1/admin, empty disables auth"`

	HttpsEnabled    bool `usage:"enable TLS"`
	HttpsSelfsigned bool `usage:"use a self-signed certificate"`

	EnableCompression bool `usage:"gzip responses"`

	Smtp Smtp

	Version    bool `usage:"show version and exit"`
	ShowBanner bool `usage:"show big banner"`
	ShowConfig bool `usage:"print config"`
}

// Smtp configures the contact-form relay. Submissions are always stored;
// relaying only happens when Host and User are set.
type Smtp struct {
	Host string `usage:"SMTP host"`
	Port string `usage:"SMTP port"`
	User string `usage:"SMTP user (also the From address)"`
	Pass string `usage:"SMTP password"`
	To   string `usage:"destination mailbox for contact submissions"`
}

func Default() Configuration {
	return Configuration{
		HttpAddr:   ":8080",
		Dir:        "data",
		ShowBanner: true,
		Smtp: Smtp{
			Port: "587",
		},
	}
}
