// Command flagctl reads and toggles the inventory feature flags stored in Redis.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/sbilibin2017/gw-inventory/internal/logger"
	"github.com/sbilibin2017/gw-inventory/internal/repositories"
)

func main() {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Usage = func() { fmt.Fprint(flag.CommandLine.Output(), usage) }
	flag.Parse()

	if err := run(*c, flag.Args()); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "flagctl:", err)
		os.Exit(1)
	}
}

// run connects to the Redis instance the service uses and executes args.
func run(configPath string, args []string) error {
	_ = godotenv.Load(configPath)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	if err := logger.Initialize(getEnv("APP_LOG_LEVEL", "warn"), logger.FormatConsole); err != nil {
		return err
	}
	defer logger.Log.Sync()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return fmt.Errorf("REDIS_DB: %w", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", getEnv("REDIS_HOST", "localhost"), getEnv("REDIS_PORT", "6379")),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       redisDB,
	})
	defer rdb.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return execute(ctx, repositories.NewFeatureFlagRepository(rdb), args, os.Stdout)
}
