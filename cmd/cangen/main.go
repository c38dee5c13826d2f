package main

import (
	"io"
	"os"

	"github.com/urfave/cli"

	"github.com/mobility-lab-vsb/can-library-generator/base"
)

var Version = "unknown"

var (
	log     = base.Logger
	cfg     = base.NewConfig()
	logFile io.Closer
)

var catalogFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "dbc, d",
		Usage: "DBC file to compile, overrides DBC.DBCPath",
	},
	cli.StringFlag{
		Name:  "excel, x",
		Usage: "Excel catalog (sheet DBC), read instead of a DBC file",
	},
	cli.StringFlag{
		Name:  "whitelist, w",
		Usage: "JSON whitelist of the messages and signals to keep",
	},
	cli.StringSliceFlag{
		Name:  "select, s",
		Usage: "keep message[:signal,...], repeatable; '*' selects every signal, '!sig' drops one",
	},
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "cangen"
	app.Usage = "compile a CAN database into a Go codec package"
	app.Version = Version

	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config, c",
			Usage: "config file, .json or .yaml",
		},
		cli.StringFlag{
			Name:  "log-level",
			Usage: "overrides LOG.LogLevel",
		},
	}

	app.Before = func(c *cli.Context) error {
		loaded, err := base.LoadConfig(c.String("config"))
		if err != nil {
			return cli.NewExitError(err, 2)
		}
		if level := c.String("log-level"); level != "" {
			loaded.LogLevel = level
		}
		closer, err := base.InitLog(loaded.LOG)
		if err != nil {
			return cli.NewExitError(err, 2)
		}
		cfg, logFile = loaded, closer
		log.Debugln("Init log success !!!")
		return nil
	}

	app.After = func(c *cli.Context) error {
		if logFile != nil {
			return logFile.Close()
		}
		return nil
	}

	app.Commands = []cli.Command{
		{
			Name:  "generate",
			Usage: "generate $package [-d file.dbc] [-o dir] [-s msg:sig,...]",
			Flags: append([]cli.Flag{
				cli.StringFlag{
					Name:  "out, o",
					Usage: "output directory, overrides Output.Dir",
				},
				cli.StringFlag{
					Name:  "package, p",
					Usage: "package name, overrides Output.Package",
				},
				cli.StringFlag{
					Name:  "file, f",
					Usage: "file name inside the output directory",
				},
				cli.StringFlag{
					Name:  "json",
					Usage: "also write the selected catalog as JSON to this path",
				},
				cli.StringFlag{
					Name:  "save-whitelist",
					Usage: "write the merged --whitelist and --select list to this path",
				},
			}, catalogFlags...),
			Action: generateAction,
		},
		{
			Name:   "check",
			Usage:  "check [-d file.dbc], report diagnostics and validation errors",
			Flags:  catalogFlags,
			Action: checkAction,
		},
		{
			Name:   "decode",
			Usage:  "decode [-d file.dbc] [frame...], frames in candump form or one per stdin line",
			Flags:  catalogFlags,
			Action: decodeAction,
		},
		{
			Name:  "encode",
			Usage: "encode -m message [-d file.dbc] signal=value...",
			Flags: append([]cli.Flag{
				cli.StringFlag{
					Name:  "message, m",
					Usage: "message name or id",
				},
			}, catalogFlags...),
			Action: encodeAction,
		},
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Errorln(err)
		os.Exit(1)
	}
}
