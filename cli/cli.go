package cli

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gclaussn/go-bpmn-extract/http/client"
	"github.com/gclaussn/go-bpmn-extract/http/common"
	"github.com/gclaussn/go-bpmn-extract/model"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	envLookupAllowed    = "envLookupAllowed"    // flag level annotation that allows an environment variable lookup
	envPrefix           = "BPMN_EXTRACT_"
	noExtractorRequired = "noExtractorRequired" // annotation, indicating that no extractor is required to run the command
	program             = "bpmn-extract"

	envAuthorization         = envPrefix + "AUTHORIZATION"
	envHttpBasicAuthUsername = envPrefix + "HTTP_BASIC_AUTH_USERNAME"
	envHttpBasicAuthPassword = envPrefix + "HTTP_BASIC_AUTH_PASSWORD"
)

func New(version string) *Cli {
	cli := Cli{version: version}

	cli.rootCmd = newRootCmd(&cli)

	return &cli
}

type Cli struct {
	version string

	rootCmd *cobra.Command

	extractor    extractor
	debugEnabled bool
}

func (c *Cli) Execute() int {
	if err := c.rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func (c *Cli) help(cmd *cobra.Command, args []string) error {
	return cmd.Help()
}

// extractor is implemented by [client.Client] for a remote and by localExtractor for a local extraction.
type extractor interface {
	Extract(ctx context.Context, bpmnXml []byte) (*model.Result, error)
}

type localExtractor struct {
	options model.Options
}

func (e localExtractor) Extract(_ context.Context, bpmnXml []byte) (*model.Result, error) {
	return model.New(bpmnXml, func(o *model.Options) {
		*o = e.options
	})
}

func newRootCmd(cli *Cli) *cobra.Command {
	var (
		url      string
		timeout  time.Duration
		maxDepth int
	)

	c := cobra.Command{
		Use:   program,
		Short: "Extracts a structured description from BPMN 2.0 XML",
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			c.SilenceUsage = true

			if _, ok := c.Annotations[noExtractorRequired]; ok {
				return nil
			}

			if cli.extractor != nil {
				return nil // skip extractor creation when testing
			}

			c.Flags().VisitAll(func(f *pflag.Flag) {
				if f.Changed {
					return
				}
				if _, ok := f.Annotations[envLookupAllowed]; !ok {
					return
				}

				// e.g. max-depth -> BPMN_EXTRACT_MAX_DEPTH
				key := envPrefix + strings.ReplaceAll(strings.ToUpper(f.Name), "-", "_")

				if value, ok := os.LookupEnv(key); ok {
					f.Value.Set(value)
				}
			})

			if url == "" {
				options := model.NewOptions()
				options.MaxDepth = maxDepth

				if err := options.Validate(); err != nil {
					return err
				}

				cli.extractor = localExtractor{options: options}
				return nil
			}

			authorization := os.Getenv(envAuthorization)
			if authorization == "" {
				username := os.Getenv(envHttpBasicAuthUsername)
				password := os.Getenv(envHttpBasicAuthPassword)

				if username != "" && password != "" {
					usernamePassword := fmt.Sprintf("%s:%s", username, password)
					authorization = "Basic " + base64.StdEncoding.EncodeToString([]byte(usernamePassword))
				}
			}

			remote, err := client.New(url, func(o *client.Options) {
				o.Authorization = authorization
				o.Timeout = timeout

				if cli.debugEnabled {
					o.OnRequest = debugRequest
					o.OnResponse = debugResponse
				}
			})
			if err != nil {
				return fmt.Errorf("failed to create HTTP client: %v", err)
			}

			cli.extractor = remote
			return nil
		},
		RunE:        cli.help,
		Annotations: map[string]string{noExtractorRequired: ""},
	}

	c.PersistentFlags().StringVar(&url, "url", "", "HTTP server URL - when empty, BPMN XML is extracted locally")
	c.PersistentFlags().DurationVar(&timeout, "timeout", 40*time.Second, "Time limit for requests made by the HTTP client")
	c.PersistentFlags().BoolVar(&cli.debugEnabled, "debug", false, "Log HTTP requests and responses")
	c.PersistentFlags().IntVar(&maxDepth, "max-depth", 0, "Maximum nesting depth of a local extraction - 0 means default")

	c.PersistentFlags().SetAnnotation("url", envLookupAllowed, nil)
	c.PersistentFlags().SetAnnotation("timeout", envLookupAllowed, nil)
	c.PersistentFlags().SetAnnotation("debug", envLookupAllowed, nil)
	c.PersistentFlags().SetAnnotation("max-depth", envLookupAllowed, nil)

	c.AddCommand(newExtractCmd(cli))
	c.AddCommand(newVersionCmd(cli))

	return &c
}

func newVersionCmd(cli *Cli) *cobra.Command {
	c := cobra.Command{
		Use:   "version",
		Short: "Show version",
		Run: func(c *cobra.Command, _ []string) {
			c.Println(cli.version)
		},
		Annotations: map[string]string{noExtractorRequired: ""},
	}

	return &c
}

func debugRequest(req *http.Request) error {
	log.Printf("%s %s", req.Method, req.URL)

	if req.Body == nil {
		return nil
	}

	b, err := io.ReadAll(req.Body)
	if err != nil {
		return err
	}

	var reqBodyStr string

	buf := &bytes.Buffer{}
	if err := json.Indent(buf, b, "", "  "); err != nil {
		reqBodyStr = string(b)
	} else {
		reqBodyStr = buf.String()
	}

	req.Body = io.NopCloser(bytes.NewReader(b)) // make body readable again

	log.Printf("request body:\n%s", reqBodyStr)
	return nil
}

func debugResponse(res *http.Response) error {
	log.Printf("status code: %d", res.StatusCode)

	log.Println("response headers:")
	for name, values := range res.Header {
		log.Printf("%s: %s", name, strings.Join(values, ", "))
	}

	resBody := res.Body
	defer resBody.Close()

	b, err := io.ReadAll(resBody)
	if err != nil {
		log.Printf("failed to read response body: %v", err)
		return err
	}

	res.Body = nil

	var resBodyStr string

	contentType := res.Header.Get(common.HeaderContentType)
	if contentType == common.ContentTypeJson || contentType == common.ContentTypeProblemJson {
		buf := &bytes.Buffer{}
		if err := json.Indent(buf, b, "", "  "); err == nil {
			resBodyStr = buf.String()
			res.Body = io.NopCloser(buf) // make body readable again
		}
	}

	if res.Body == nil {
		resBodyStr = string(b)
		res.Body = io.NopCloser(bytes.NewReader(b)) // make body readable again
	}

	if resBodyStr != "" {
		log.Printf("response body:\n%s", resBodyStr)
	}
	return nil
}
