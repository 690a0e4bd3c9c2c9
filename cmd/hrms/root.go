package main

import (
	"context"
	"fmt"

	"axiapac.com/hrms/core"
	"axiapac.com/hrms/infrastructure/communication"
	"axiapac.com/hrms/infrastructure/devops"
	"axiapac.com/hrms/infrastructure/filesystem"
	"axiapac.com/hrms/security"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// app is shared by every command; PersistentPreRunE fills cfg and log.
type app struct {
	configPath string
	cfg        *devops.Config
	log        *logrus.Logger
	slack      *communication.Slack
}

func newRootCmd() *cobra.Command {
	a := &app{log: logrus.StandardLogger()}

	rootCmd := &cobra.Command{
		Use:           "hrms",
		Short:         "HR management service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}
	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to the yaml config file")

	rootCmd.AddCommand(newServeCmd(a))
	rootCmd.AddCommand(newMigrateCmd(a))
	rootCmd.AddCommand(newCreateTokenCmd(a))
	rootCmd.AddCommand(newImportCmd(a))

	return rootCmd
}

func (a *app) init() error {
	cfg, err := devops.LoadConfig(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	a.log.SetLevel(level)
	if cfg.Log.Format == "text" {
		a.log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		a.log.SetFormatter(&logrus.JSONFormatter{})
	}

	if slackCfg := cfg.Notify.Slack; slackCfg.Token != "" {
		a.slack = communication.NewSlack(slackCfg.Token, communication.SlackOption{
			InfoChannelID:  slackCfg.InfoChannel,
			ErrorChannelID: slackCfg.ErrorChannel,
		})
		if slackCfg.ErrorChannel != "" {
			a.log.AddHook(a.slack.Hook())
		}
	}
	return nil
}

// runtime is what a command needs to run the use cases.
type runtime struct {
	dm     *core.DatabaseManager
	tokens *security.TokenService
	svc    *core.Service
}

func (r *runtime) Close() error {
	return r.dm.Close()
}

// bootstrap connects to the database and AWS and assembles the service.
func (a *app) bootstrap(ctx context.Context) (*runtime, error) {
	cfg := a.cfg

	var awsCfg *aws.Config
	if cfg.NeedsAWS() {
		loaded, err := devops.LoadAWSConfig(ctx, cfg.AWS.Region)
		if err != nil {
			return nil, err
		}
		awsCfg = &loaded
	}

	var params devops.ParameterGetter
	if awsCfg != nil && cfg.Auth.SecretParameter != "" {
		params = ssm.NewFromConfig(*awsCfg)
	}
	secret, err := cfg.ResolveSigningSecret(ctx, params)
	if err != nil {
		return nil, err
	}
	tokens, err := security.NewTokenService(security.DecodeSecret(secret), cfg.Auth.TokenTTL)
	if err != nil {
		return nil, err
	}

	if cfg.Database.DSN == "" {
		return nil, fmt.Errorf("database.dsn is required (or set %s)", devops.EnvDSN)
	}
	dm, err := core.New(cfg.Database.DSN, core.PoolOptions{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, core.ParseLogLevel(cfg.Database.LogLevel))
	if err != nil {
		return nil, err
	}

	files, err := filesystem.New(filesystem.Options{
		Driver: cfg.Storage.Driver,
		Dir:    cfg.Storage.Dir,
		Bucket: cfg.Storage.Bucket,
		Prefix: cfg.Storage.Prefix,
	}, awsCfg)
	if err != nil {
		_ = dm.Close()
		return nil, err
	}

	svc := core.NewService(dm, core.Options{
		Files:    files,
		Notifier: a.notifier(awsCfg),
		Tokens:   tokens,
		Logger:   logrus.NewEntry(a.log),
		Location: cfg.Location(),
	})
	return &runtime{dm: dm, tokens: tokens, svc: svc}, nil
}

func (a *app) notifier(awsCfg *aws.Config) core.Notifier {
	var notifiers communication.Multi
	if a.slack != nil && a.cfg.Notify.Slack.InfoChannel != "" {
		notifiers = append(notifiers, a.slack)
	}
	if from := a.cfg.Notify.Email.From; from != "" && awsCfg != nil {
		notifiers = append(notifiers, communication.NewEmail(*awsCfg, from))
	}
	if len(notifiers) == 0 {
		return communication.Nop{}
	}
	return notifiers
}
