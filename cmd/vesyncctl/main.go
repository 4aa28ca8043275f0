package main

import (
	"fmt"
	"os"
	"strconv"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	vesync "github.com/cloudkucooland/go-vesync"
)

func main() {
	var username, password string

	app := cli.App{
		Name:  "vesyncctl",
		Usage: "query and control VeSync devices from the command line",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "username",
				Aliases:     []string{"u"},
				Usage:       "VeSync account email",
				EnvVars:     []string{"VESYNC_USERNAME"},
				Destination: &username,
			},
			&cli.StringFlag{
				Name:        "password",
				Aliases:     []string{"p"},
				Usage:       "VeSync account password",
				EnvVars:     []string{"VESYNC_PASSWORD"},
				Destination: &password,
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("debug") {
				log.SetLevel(log.DebugLevel)
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "devices",
				Usage: "list registered devices",
				Action: func(c *cli.Context) error {
					m, err := login(username, password)
					if err != nil {
						return err
					}
					for _, d := range m.Devices() {
						fmt.Printf("%-20s %-16s %-10s %-8s %s\n",
							d.Name, d.DeviceType, d.Family(), d.Status, d.ConnectionStatus)
					}
					return nil
				},
			},
			{
				Name:      "on",
				Usage:     "turn a device on",
				ArgsUsage: "<device>",
				Action: func(c *cli.Context) error {
					return setStatus(username, password, c.Args().First(), true)
				},
			},
			{
				Name:      "off",
				Usage:     "turn a device off",
				ArgsUsage: "<device>",
				Action: func(c *cli.Context) error {
					return setStatus(username, password, c.Args().First(), false)
				},
			},
			{
				Name:      "telemetry",
				Usage:     "show an outlet's meter readings",
				ArgsUsage: "<device>",
				Action: func(c *cli.Context) error {
					m, err := login(username, password)
					if err != nil {
						return err
					}
					d, ok := m.GetDevice(c.Args().First())
					if !ok {
						return fmt.Errorf("no such device: %s", c.Args().First())
					}
					fmt.Printf("power:   %.1f W\n", d.Power())
					fmt.Printf("voltage: %.1f V\n", d.Voltage())
					fmt.Printf("today:   %.3f kWh\n", d.KilowattHoursToday())
					fmt.Printf("week:    %.3f kWh\n", d.WeeklyEnergyTotal())
					fmt.Printf("month:   %.3f kWh\n", d.MonthlyEnergyTotal())
					fmt.Printf("year:    %.3f kWh\n", d.YearlyEnergyTotal())
					fmt.Printf("active:  %d minutes\n", d.ActiveTime())
					if series := d.WeekDailyEnergy(); len(series) > 0 {
						fmt.Printf("daily:   %v\n", series)
					}
					return nil
				},
			},
			{
				Name:      "purifier",
				Usage:     "air purifier controls",
				ArgsUsage: "<device>",
				Subcommands: []*cli.Command{
					{
						Name:      "mode",
						Usage:     "set mode (auto/manual/sleep)",
						ArgsUsage: "<device> <mode>",
						Action: func(c *cli.Context) error {
							d, err := purifier(username, password, c.Args().Get(0))
							if err != nil {
								return err
							}
							if !d.SetMode(c.Args().Get(1)) {
								return fmt.Errorf("unable to set mode %s", c.Args().Get(1))
							}
							return nil
						},
					},
					{
						Name:      "speed",
						Usage:     "set fan speed (1-3, omit to cycle)",
						ArgsUsage: "<device> [speed]",
						Action: func(c *cli.Context) error {
							d, err := purifier(username, password, c.Args().Get(0))
							if err != nil {
								return err
							}
							speed := 0
							if c.Args().Len() > 1 {
								speed, err = strconv.Atoi(c.Args().Get(1))
								if err != nil {
									return fmt.Errorf("speed must be 1-3")
								}
							}
							if !d.ChangeFanSpeed(speed) {
								return fmt.Errorf("unable to change speed")
							}
							return nil
						},
					},
					{
						Name:      "status",
						Usage:     "show purifier details",
						ArgsUsage: "<device>",
						Action: func(c *cli.Context) error {
							d, err := purifier(username, password, c.Args().Get(0))
							if err != nil {
								return err
							}
							fmt.Printf("status:      %s\n", d.Status)
							fmt.Printf("mode:        %s\n", d.Mode())
							fmt.Printf("fan level:   %d\n", d.FanLevel())
							fmt.Printf("filter life: %d%%\n", d.FilterLife())
							fmt.Printf("air quality: %s\n", d.AirQuality())
							fmt.Printf("screen:      %s\n", d.ScreenStatus())
							return nil
						},
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func login(username, password string) (*vesync.Manager, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("set --username and --password (or VESYNC_USERNAME/VESYNC_PASSWORD)")
	}
	m := vesync.New(username, password)
	if err := m.Login(); err != nil {
		return nil, err
	}
	m.Update()
	return m, nil
}

func setStatus(username, password, name string, on bool) error {
	m, err := login(username, password)
	if err != nil {
		return err
	}
	d, ok := m.GetDevice(name)
	if !ok {
		return fmt.Errorf("no such device: %s", name)
	}
	if on {
		if !d.TurnOn() {
			return fmt.Errorf("unable to turn on %s", name)
		}
	} else if !d.TurnOff() {
		return fmt.Errorf("unable to turn off %s", name)
	}
	fmt.Printf("%s: %s\n", d.Name, d.Status)
	return nil
}

func purifier(username, password, name string) (*vesync.Device, error) {
	m, err := login(username, password)
	if err != nil {
		return nil, err
	}
	d, ok := m.GetDevice(name)
	if !ok {
		return nil, fmt.Errorf("no such device: %s", name)
	}
	if d.Family() != vesync.FamilyPurifier {
		return nil, fmt.Errorf("%s is not an air purifier", name)
	}
	d.FetchDetails()
	return d, nil
}
