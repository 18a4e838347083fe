package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tomo4k1/tamenchan-bootcamp/common/config"
	"github.com/tomo4k1/tamenchan-bootcamp/common/log"
	"github.com/tomo4k1/tamenchan-bootcamp/common/metrics"
	"github.com/tomo4k1/tamenchan-bootcamp/gate/app"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tamenchan",
		Short:         "清一色听牌练习",
		Long:          `清一色听牌练习：出题、判定待牌、拆解和牌`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(
		newServeCmd(),
		newWaitsCmd(),
		newClassifyCmd(),
		newDecomposeCmd(),
		newGenerateCmd(),
	)
	return rootCmd
}

func newServeCmd() *cobra.Command {
	var configFile string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "启动 HTTP 服务",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Load(configFile); err != nil {
				log.Fatal("文件配置发生错误：%v", err)
			}
			conf := config.Conf
			log.InitLog(conf.AppName, conf.Log.Level)
			if conf.Log.Path != "" {
				f, err := os.OpenFile(conf.Log.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return fmt.Errorf("打开日志文件失败: %w", err)
				}
				defer f.Close()
				log.SetOutput(f)
			}
			log.Info("配置文件: %+v", *conf)

			if conf.MetricPort > 0 {
				go func() {
					log.Info("启动监控..., URL: http://localhost:%d/debug/statsviz/", conf.MetricPort)
					if err := metrics.Serve(fmt.Sprintf("0.0.0.0:%d", conf.MetricPort)); err != nil {
						log.Error("监控服务异常: %v", err)
					}
				}()
			}

			return app.Run(context.Background(), conf)
		},
	}
	cmd.Flags().StringVar(&configFile, "configFile", "", "resource file")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error("发生异常: %v", err)
		os.Exit(1)
	}
}
