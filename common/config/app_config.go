package config

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "TAMENCHAN"

// Conf 当前生效的配置，Load 之前为默认值
var Conf = Default()

var (
	mu      sync.Mutex
	current *viper.Viper
)

type TrainerConfiguration struct {
	AppName      string        `mapstructure:"appName"`
	Mode         string        `mapstructure:"mode"` // gin 运行模式
	HttpPort     int           `mapstructure:"httpPort"`
	MetricPort   int           `mapstructure:"metricPort"` // 0 表示不启动 statsviz
	Log          LogConf       `mapstructure:"log"`
	Generator    GeneratorConf `mapstructure:"generator"`
	Pool         PoolConf      `mapstructure:"pool"`
	Cache        CacheConf     `mapstructure:"cache"`
	Problem      ProblemConf   `mapstructure:"problem"`
	RateLimit    RateLimitConf `mapstructure:"rateLimit"`
	DatabaseConf DatabaseConf  `mapstructure:"database"`
}

type LogConf struct {
	Level string `mapstructure:"level"`
	Path  string `mapstructure:"path"`
}

type GeneratorConf struct {
	MaxAttempts       int    `mapstructure:"maxAttempts"`
	Seed              uint64 `mapstructure:"seed"` // 0 表示随机
	DefaultLength     int    `mapstructure:"defaultLength"`
	DefaultDifficulty int    `mapstructure:"defaultDifficulty"`
}

// PoolConf 预生成题库
type PoolConf struct {
	Enabled      bool  `mapstructure:"enabled"`
	Size         int   `mapstructure:"size"`     // 每个 (张数, 难度) 题库的目标数量
	Interval     int64 `mapstructure:"interval"` // 单位是毫秒
	Workers      int   `mapstructure:"workers"`
	Lengths      []int `mapstructure:"lengths"`
	Difficulties []int `mapstructure:"difficulties"`
}

type CacheConf struct {
	MaxCost int64 `mapstructure:"maxCost"`
	TTL     int   `mapstructure:"ttl"` // 秒
}

type ProblemConf struct {
	TTL int `mapstructure:"ttl"` // 已发出题目的保留时间，秒
}

type RateLimitConf struct {
	Rate  int `mapstructure:"rate"`  // 每秒请求数
	Burst int `mapstructure:"burst"` // 突发倍数
}

type DatabaseConf struct {
	MongoConf MongoConf `mapstructure:"mongo"`
	RedisConf RedisConf `mapstructure:"redis"`
}

type MongoConf struct {
	Url         string `mapstructure:"url"`
	Db          string `mapstructure:"db"`
	Username    string `mapstructure:"username"`
	Password    string `mapstructure:"password"`
	MinPoolSize int    `mapstructure:"minPoolSize"`
	MaxPoolSize int    `mapstructure:"maxPoolSize"`
}

type RedisConf struct {
	Addr         string   `mapstructure:"addr"`
	ClusterAddrs []string `mapstructure:"clusterAddrs"`
	Password     string   `mapstructure:"password"`
	PoolSize     int      `mapstructure:"poolSize"`
	MinIdleConns int      `mapstructure:"minIdleConns"`
	Host         string   `mapstructure:"host"`
	Port         int      `mapstructure:"port"`
}

// Enabled mongo 未配置时使用内存仓储
func (m MongoConf) Enabled() bool {
	return m.Url != ""
}

func (r RedisConf) Enabled() bool {
	return r.Addr != "" || len(r.ClusterAddrs) > 0 || (r.Host != "" && r.Port > 0)
}

func (p PoolConf) IntervalDuration() time.Duration {
	return time.Duration(p.Interval) * time.Millisecond
}

func (c CacheConf) TTLDuration() time.Duration {
	return time.Duration(c.TTL) * time.Second
}

func (p ProblemConf) TTLDuration() time.Duration {
	return time.Duration(p.TTL) * time.Second
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("appName", "tamenchan")
	v.SetDefault("mode", "release")
	v.SetDefault("httpPort", 8080)
	v.SetDefault("metricPort", 0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.path", "")
	v.SetDefault("generator.maxAttempts", 10000)
	v.SetDefault("generator.seed", 0)
	v.SetDefault("generator.defaultLength", 13)
	v.SetDefault("generator.defaultDifficulty", 3)
	v.SetDefault("pool.enabled", true)
	v.SetDefault("pool.size", 32)
	v.SetDefault("pool.interval", 2000)
	v.SetDefault("pool.workers", 4)
	v.SetDefault("pool.lengths", []int{7, 10, 13})
	v.SetDefault("pool.difficulties", []int{1, 2, 3})
	v.SetDefault("cache.maxCost", 1<<20)
	v.SetDefault("cache.ttl", 3600)
	v.SetDefault("problem.ttl", 1800)
	v.SetDefault("rateLimit.rate", 20)
	v.SetDefault("rateLimit.burst", 2)
	v.SetDefault("database.mongo.url", "")
	v.SetDefault("database.mongo.db", "tamenchan")
	v.SetDefault("database.mongo.minPoolSize", 1)
	v.SetDefault("database.mongo.maxPoolSize", 10)
	v.SetDefault("database.redis.addr", "")
	v.SetDefault("database.redis.password", "")
	v.SetDefault("database.redis.poolSize", 10)
	v.SetDefault("database.redis.minIdleConns", 1)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

// Default 只包含默认值的配置
func Default() *TrainerConfiguration {
	cfg, err := decode(newViper())
	if err != nil {
		panic(fmt.Errorf("解析默认配置出错: %w", err))
	}
	return cfg
}

// Load 读取配置文件，configFile 为空时只使用默认值和环境变量
func Load(configFile string) error {
	v := newViper()
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("读取配置文件出错: %w", err)
		}
	}

	cfg, err := decode(v)
	if err != nil {
		return err
	}

	mu.Lock()
	current = v
	Conf = cfg
	mu.Unlock()
	return nil
}

func decode(v *viper.Viper) (*TrainerConfiguration, error) {
	cfg := new(TrainerConfiguration)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件出错: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *TrainerConfiguration) Validate() error {
	if c.HttpPort <= 0 || c.HttpPort > 65535 {
		return fmt.Errorf("httpPort 非法: %d", c.HttpPort)
	}
	if c.MetricPort < 0 || c.MetricPort > 65535 {
		return fmt.Errorf("metricPort 非法: %d", c.MetricPort)
	}
	if !validLength(c.Generator.DefaultLength) {
		return fmt.Errorf("generator.defaultLength 只能是 7、10 或 13: %d", c.Generator.DefaultLength)
	}
	if !validDifficulty(c.Generator.DefaultDifficulty) {
		return fmt.Errorf("generator.defaultDifficulty 只能是 1~3: %d", c.Generator.DefaultDifficulty)
	}
	if c.Generator.MaxAttempts <= 0 {
		return fmt.Errorf("generator.maxAttempts 必须大于 0: %d", c.Generator.MaxAttempts)
	}
	for _, n := range c.Pool.Lengths {
		if !validLength(n) {
			return fmt.Errorf("pool.lengths 包含非法张数: %d", n)
		}
	}
	for _, d := range c.Pool.Difficulties {
		if !validDifficulty(d) {
			return fmt.Errorf("pool.difficulties 包含非法难度: %d", d)
		}
	}
	if c.Pool.Enabled && (c.Pool.Interval <= 0 || c.Pool.Workers <= 0) {
		return fmt.Errorf("pool.interval 和 pool.workers 必须大于 0")
	}
	return nil
}

func validLength(n int) bool {
	return n == 7 || n == 10 || n == 13
}

func validDifficulty(d int) bool {
	return d >= 1 && d <= 3
}
