package daemon

import (
	"bufio"
	"errors"
	"fmt"
	"log"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/gclaussn/go-bpmn-extract/http/server"
)

const (
	envPrefix = "BPMN_EXTRACT_"

	optHttpBasicAuthPassword  = "HTTP_BASIC_AUTH_PASSWORD"
	optHttpBasicAuthUsername  = "HTTP_BASIC_AUTH_USERNAME"
	optHttpBindAddress        = "HTTP_BIND_ADDRESS"
	optHttpCorsAllowedOrigins = "HTTP_CORS_ALLOWED_ORIGINS"
	optHttpHandlerTimeout     = "HTTP_HANDLER_TIMEOUT"
	optHttpMaxBodySize        = "HTTP_MAX_BODY_SIZE"
	optHttpReadTimeout        = "HTTP_READ_TIMEOUT"
	optHttpWriteTimeout       = "HTTP_WRITE_TIMEOUT"
	optMaxDepth               = "MAX_DEPTH"
)

var (
	version = "unknown-version"
)

func newConf() *conf {
	env := env{}
	for _, value := range os.Environ() {
		env.Set(value)
	}

	conf := conf{
		envFile: envFile{env},
		opts:    make(map[string]*confOpt),
	}

	conf.addServerOption(
		optHttpBasicAuthPassword,
		"password for basic authentication - requires "+envPrefix+optHttpBasicAuthUsername,
		func(o server.Options) string {
			return ""
		},
		func(o *server.Options, co *confOpt) error {
			o.BasicAuthPassword = co.value()
			return nil
		},
	)
	conf.addServerOption(
		optHttpBasicAuthUsername,
		"username for basic authentication - requires "+envPrefix+optHttpBasicAuthPassword,
		func(o server.Options) string {
			return ""
		},
		func(o *server.Options, co *confOpt) error {
			o.BasicAuthUsername = co.value()
			return nil
		},
	)
	conf.addServerOption(
		optHttpBindAddress,
		"TCP address of the HTTP API to listen on",
		func(o server.Options) string {
			return o.BindAddress
		},
		func(o *server.Options, co *confOpt) error {
			bindAddress := co.value()
			if bindAddress == "" {
				return errors.New("is empty")
			}

			o.BindAddress = bindAddress
			return nil
		},
	)
	conf.addServerOption(
		optHttpCorsAllowedOrigins,
		"comma-separated list of origins, which are allowed to make cross-origin requests - * allows any origin",
		func(o server.Options) string {
			return strings.Join(o.CorsAllowedOrigins, ",")
		},
		func(o *server.Options, co *confOpt) error {
			var origins []string
			for _, origin := range strings.Split(co.value(), ",") {
				if origin = strings.TrimSpace(origin); origin != "" {
					origins = append(origins, origin)
				}
			}

			o.CorsAllowedOrigins = origins
			return nil
		},
	)
	conf.addServerOption(
		optHttpHandlerTimeout,
		"time limit for a HTTP handler, before responding with HTTP 503",
		func(o server.Options) string {
			return o.HandlerTimeout.String()
		},
		func(o *server.Options, co *confOpt) error {
			handlerTimeout, err := time.ParseDuration(co.value())
			if err == nil && handlerTimeout <= 0 {
				return errors.New("must be greater than 0")
			}

			o.HandlerTimeout = handlerTimeout
			return err
		},
	)
	conf.addServerOption(
		optHttpMaxBodySize,
		"maximum size of a request body in bytes",
		func(o server.Options) string {
			return strconv.FormatInt(o.MaxBodySize, 10)
		},
		func(o *server.Options, co *confOpt) error {
			maxBodySize, err := strconv.ParseInt(co.value(), 10, 64)
			if err == nil && maxBodySize <= 0 {
				return errors.New("must be greater than 0")
			}

			o.MaxBodySize = maxBodySize
			return err
		},
	)
	conf.addServerOption(
		optHttpReadTimeout,
		"maximum duration for reading the entire request - see http.Server#ReadTimeout",
		func(o server.Options) string {
			return o.ReadTimeout.String()
		},
		func(o *server.Options, co *confOpt) error {
			readTimeout, err := time.ParseDuration(co.value())
			o.ReadTimeout = readTimeout
			return err
		},
	)
	conf.addServerOption(
		optHttpWriteTimeout,
		"maximum duration before timing out writing the response - see http.Server#WriteTimeout",
		func(o server.Options) string {
			return o.WriteTimeout.String()
		},
		func(o *server.Options, co *confOpt) error {
			writeTimeout, err := time.ParseDuration(co.value())
			o.WriteTimeout = writeTimeout
			return err
		},
	)
	conf.addServerOption(
		optMaxDepth,
		"maximum nesting depth of BPMN XML - 0 means default",
		func(o server.Options) string {
			return strconv.Itoa(o.Model.MaxDepth)
		},
		func(o *server.Options, co *confOpt) error {
			maxDepth, err := strconv.Atoi(co.value())
			if err == nil && maxDepth < 0 {
				return errors.New("must not be negative")
			}

			o.Model.MaxDepth = maxDepth
			return err
		},
	)

	return &conf
}

func listConf(conf *conf) int {
	opts := make([]*confOpt, len(conf.opts))

	i := 0
	for _, opt := range conf.opts {
		opts[i] = opt
		i++
	}

	slices.SortFunc(opts, func(a *confOpt, b *confOpt) int {
		return strings.Compare(a.key, b.key)
	})

	log.SetFlags(0)
	for _, opt := range opts {
		log.Printf("%s=%s", opt.key, opt.value())
	}

	return 0
}

func listConfErrors(conf *conf) int {
	var opts []*confOpt

	for _, opt := range conf.opts {
		if opt.err != nil {
			opts = append(opts, opt)
		}
	}

	if len(opts) == 0 {
		return 0
	}

	slices.SortFunc(opts, func(a *confOpt, b *confOpt) int {
		return strings.Compare(a.key, b.key)
	})

	log.SetFlags(0)
	for _, opt := range opts {
		value := opt.value()
		if value == "" {
			log.Printf("%s: %v", opt.key, opt.err)
		} else {
			log.Printf("%s=%s: %v", opt.key, value, opt.err)
		}
	}

	return 1
}

func listConfOpts(conf *conf) int {
	opts := make([]*confOpt, len(conf.opts))

	i := 0
	for _, opt := range conf.opts {
		opts[i] = opt
		i++
	}

	slices.SortFunc(opts, func(a *confOpt, b *confOpt) int {
		return strings.Compare(a.key, b.key)
	})

	maxKeyLength := 0
	for _, opt := range opts {
		if keyLength := len(opt.key); keyLength > maxKeyLength {
			maxKeyLength = keyLength
		}
	}

	var sb strings.Builder
	for _, opt := range opts {
		sb.WriteString(opt.key)
		sb.WriteString(strings.Repeat(" ", maxKeyLength-len(opt.key)))
		sb.WriteString("   ")
		sb.WriteString(opt.description)

		if opt.defaultValue != "" {
			sb.WriteString(fmt.Sprintf(" - default: %s", opt.defaultValue))
		}

		sb.WriteRune('\n')
	}

	log.SetFlags(0)
	log.Print(sb.String())

	return 0
}

func showVersion() int {
	log.Println(version)
	return 0
}

type conf struct {
	envFile envFile
	opts    map[string]*confOpt
}

func (c *conf) addServerOption(
	key string,
	description string,
	getOption func(server.Options) string,
	setOption func(*server.Options, *confOpt) error,
) *confOpt {
	co := confOpt{
		env:         c.envFile.env,
		key:         envPrefix + key,
		description: description,

		getServerOption: getOption,
		setServerOption: setOption,
	}

	c.opts[key] = &co
	return &co
}

func (c *conf) getServerOptions(options *server.Options) {
	for _, opt := range c.opts {
		if opt.setServerOption != nil {
			if err := opt.setServerOption(options, opt); err != nil {
				opt.err = err
			}
		}
	}
}

func (c *conf) setServerOptions(options server.Options) {
	for _, opt := range c.opts {
		if opt.getServerOption != nil {
			opt.defaultValue = opt.getServerOption(options)
		}
	}
}

type confOpt struct {
	env env

	key          string
	description  string
	defaultValue string

	getServerOption func(server.Options) string
	setServerOption func(*server.Options, *confOpt) error

	err error
}

func (o *confOpt) value() string {
	value := o.env[o.key]
	if value != "" {
		return value
	} else {
		return o.defaultValue
	}
}

type env map[string]string

func (v env) Set(value string) error {
	s := strings.SplitN(value, "=", 2)
	if len(s) != 2 {
		return fmt.Errorf("required format %s", v)
	}
	v[s[0]] = s[1]
	return nil
}

func (v env) String() string {
	return "<key>=<value>"
}

type envFile struct {
	env env
}

func (v envFile) Set(value string) error {
	file, err := os.Open(value)
	if err != nil {
		return err
	}

	defer file.Close()

	scanner := bufio.NewScanner(file)

	i := 0
	for scanner.Scan() {
		i++
		line := scanner.Text()
		if err := v.env.Set(line); err != nil {
			return fmt.Errorf("wrong format in line %d: required format %s", i, v.env)
		}
	}

	return nil
}

func (v envFile) String() string {
	return "<file>"
}
