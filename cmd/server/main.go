package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"gopkg.in/urfave/cli.v2"

	"github.com/relip/elasticsearch-extended-analyze/server"
	"github.com/relip/elasticsearch-extended-analyze/util/log"
)

const version = "0.1.0"

const flagConfig = "config"

var (
	app = &cli.App{
		Name:        "extended-analyze",
		Usage:       "extended-analyze [command]",
		Description: "Extended analyze server: stage-by-stage analysis introspection.",
	}
	startCmd = &cli.Command{
		Name:        "start",
		Usage:       "extended-analyze start",
		Description: "Start the extended analyze server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagConfig,
				Aliases: []string{"c"},
				Usage:   "server config file path",
			},
		},
		Action: func(cmdCtx *cli.Context) error {
			conf := server.LoadConfig(cmdCtx.String(flagConfig))
			log.InitFileLog(conf.LogCfg.LogPath, conf.ModuleCfg.Name, conf.LogCfg.Level)

			s, err := server.NewServer(conf)
			if err != nil {
				fmt.Printf("Extended analyze server start error: %s\n", err)
				return err
			}
			if err = s.Start(); err != nil {
				fmt.Printf("Extended analyze server start error: %s\n", err)
				return err
			}

			waitShutdown(s.Close)
			return nil
		},
	}
	versionCmd = &cli.Command{
		Name:        "version",
		Usage:       "do the version",
		Description: "Prints out build version information",
		Action: func(*cli.Context) error {
			fmt.Println("extended-analyze", version)
			return nil
		},
	}
)

func init() {
	app.Commands = append(app.Commands, startCmd, versionCmd)
}

func waitShutdown(stop func() error) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	<-sigs

	fmt.Println("Initiating server graceful shutdown...")
	if err := stop(); err != nil {
		fmt.Println("Server shutdown error is :", err)
	}
	log.Sync()
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Printf("Run extended analyze server error: %s\n", err)
		os.Exit(-1)
	}
}
