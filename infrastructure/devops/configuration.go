package devops

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// SSMParameter holds the full yaml config in release environments. Dev
// reads config.yaml from the working directory instead.
const SSMParameter = "internhq"

type Config struct {
	Env            string `yaml:"env"`
	Addr           string `yaml:"addr"`
	DSN            string `yaml:"dsn"`
	MaxConnections int    `yaml:"maxConnections"`

	// Base64-encoded HS256 signing secret.
	JWTSecret      string `yaml:"jwtSecret"`
	TokenTTLHours  int    `yaml:"tokenTtlHours"`

	Buckets struct {
		Archive string `yaml:"archive"`
		Import  string `yaml:"import"`
		Holiday string `yaml:"holiday"`
	} `yaml:"buckets"`

	Mail struct {
		Sender string `yaml:"sender"`
	} `yaml:"mail"`

	Slack struct {
		InfoChannel  string `yaml:"infoChannel"`
		ErrorChannel string `yaml:"errorChannel"`
	} `yaml:"slack"`
}

var (
	once    sync.Once
	cfg     *Config
	loadErr error
)

// Load resolves configuration once per process: the yaml payload comes from
// the SSM parameter when INTERNHQ_ENV is release, otherwise from the local
// config file. Environment variables override either source.
func Load(ctx context.Context) (*Config, error) {
	once.Do(func() {
		env := os.Getenv("INTERNHQ_ENV")

		var payload []byte
		if env == "release" {
			payload, loadErr = fetchSSMPayload(ctx)
		} else {
			path := os.Getenv("INTERNHQ_CONFIG")
			if path == "" {
				path = "config.yaml"
			}
			payload, loadErr = os.ReadFile(path)
			if os.IsNotExist(loadErr) {
				// No file is fine in dev; everything can come from env.
				payload, loadErr = nil, nil
			}
		}
		if loadErr != nil {
			return
		}

		parsed := &Config{}
		if len(payload) > 0 {
			if err := yaml.Unmarshal(payload, parsed); err != nil {
				loadErr = fmt.Errorf("unmarshal yaml: %w", err)
				return
			}
		}

		applyEnvOverrides(parsed)
		applyDefaults(parsed, env)
		cfg = parsed
	})

	return cfg, loadErr
}

func fetchSSMPayload(ctx context.Context) ([]byte, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := ssm.NewFromConfig(awsCfg)

	out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(SSMParameter),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("get parameter: %w", err)
	}

	return []byte(*out.Parameter.Value), nil
}

func applyEnvOverrides(c *Config) {
	if v := os.Getenv("DSN"); v != "" {
		c.DSN = v
	}
	if v := os.Getenv("INTERNHQ_ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("INTERNHQ_SIGNING_SECRET"); v != "" {
		c.JWTSecret = v
	}
	if v := os.Getenv("INTERNHQ_MAX_CONNECTIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxConnections = n
		}
	}
}

func applyDefaults(c *Config, env string) {
	if c.Env == "" {
		c.Env = env
	}
	if c.Env == "" {
		c.Env = "dev"
	}
	if c.Addr == "" {
		c.Addr = ":8090"
	}
	if c.MaxConnections <= 0 {
		c.MaxConnections = 10
	}
	if c.TokenTTLHours <= 0 {
		c.TokenTTLHours = 12
	}
}
