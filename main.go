package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fulldump/goconfig"
	_ "github.com/joho/godotenv/autoload"

	"github.com/mounirtms/showcase/bootstrap"
	"github.com/mounirtms/showcase/configuration"
)

var VERSION = "dev"

var banner = `
     _
 ___| |__   _____      _____ __ _ ___  ___
/ __| '_ \ / _ \ \ /\ / / __/ _` + "`" + ` / __|/ _ \
\__ \ | | | (_) \ V  V / (_| (_| \__ \  __/
|___/_| |_|\___/ \_/\_/ \___\__,_|___/\___|
                          version ` + VERSION + `
`

func main() {

	c := configuration.Default()
	goconfig.Read(&c)

	if c.Version {
		fmt.Println("Version:", VERSION)
		return
	}

	if c.ShowBanner {
		fmt.Println(banner)
	}

	if c.ShowConfig {
		e := json.NewEncoder(os.Stdout)
		e.SetIndent("", "    ")
		e.Encode(c)
	}

	bootstrap.VERSION = VERSION

	start, _ := bootstrap.Bootstrap(&c)
	start()
}
