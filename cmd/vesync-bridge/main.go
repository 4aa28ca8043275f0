package main

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/brutella/hc/log"
	"github.com/urfave/cli/v2"

	"github.com/cloudkucooland/go-vesync/bridge"
)

func main() {
	var file string

	app := cli.App{
		Name:  "vesync-bridge",
		Usage: "expose VeSync outlets and switches to HomeKit",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Value:       "vesync.json",
				Usage:       "configuration file",
				Destination: &file,
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
		},
		Action: func(c *cli.Context) error {
			if c.Bool("debug") {
				log.Debug.Enable()
			}

			cf, err := filepath.Abs(file)
			if err != nil {
				log.Info.Panic("unable to resolve config path: ", file)
			}
			raw, err := ioutil.ReadFile(cf)
			if err != nil {
				log.Info.Panic("unable to read config: ", cf)
			}

			var conf bridge.Config
			if err := json.Unmarshal(raw, &conf); err != nil {
				log.Info.Panic(err, string(raw))
			}
			if conf.Username == "" || conf.Password == "" {
				log.Info.Panic("config must set Username and Password")
			}

			p := bridge.New(conf)
			if err := p.Startup(); err != nil {
				log.Info.Panic(err)
			}
			p.StartHTTP()

			// HC can only be started once all accessories are known
			if err := p.StartHC(); err != nil {
				log.Info.Panic(err)
			}
			p.Background()

			// wait for signal to shut down
			sigch := make(chan os.Signal, 3)
			signal.Notify(sigch, syscall.SIGINT, syscall.SIGQUIT, syscall.SIGTERM, syscall.SIGHUP, os.Interrupt)
			sig := <-sigch

			log.Info.Printf("shutdown requested by signal: %s", sig)
			p.StopHTTP()
			p.Shutdown()
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Info.Panic(err)
	}
}
