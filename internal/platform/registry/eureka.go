package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"
)

// EurekaClient registers a dispatcher instance with a Eureka server over
// its plain REST surface and keeps the lease alive with heartbeats.
type EurekaClient struct {
	logger     *slog.Logger
	httpClient *http.Client

	serverURL string
	appName   string
	username  string
	password  string

	instanceID string
	context    string
	port       int
}

// Options carries the registration values; every field is required.
type Options struct {
	ServerURL  string
	AppName    string
	Username   string
	Password   string
	InstanceID string
	Context    string
	Port       int
}

// NewEurekaClient builds a client. A nil httpClient gets a sane default.
func NewEurekaClient(logger *slog.Logger, opts Options, httpClient *http.Client) *EurekaClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &EurekaClient{
		logger:     logger.With("component", "eureka"),
		httpClient: httpClient,
		serverURL:  strings.TrimRight(opts.ServerURL, "/"),
		appName:    opts.AppName,
		username:   opts.Username,
		password:   opts.Password,
		instanceID: opts.InstanceID,
		context:    opts.Context,
		port:       opts.Port,
	}
}

type instanceInfo struct {
	InstanceID string         `json:"instanceId"`
	HostName   string         `json:"hostName"`
	App        string         `json:"app"`
	IPAddr     string         `json:"ipAddr"`
	Status     string         `json:"status"`
	Port       portInfo       `json:"port"`
	HomePage   string         `json:"homePageUrl,omitempty"`
	HealthPage string         `json:"healthCheckUrl,omitempty"`
	DataCenter dataCenterInfo `json:"dataCenterInfo"`
}

type portInfo struct {
	Port    int    `json:"$"`
	Enabled string `json:"@enabled"`
}

type dataCenterInfo struct {
	Class string `json:"@class"`
	Name  string `json:"name"`
}

func (c *EurekaClient) appURL() string {
	return fmt.Sprintf("%s/apps/%s", c.serverURL, strings.ToUpper(strings.ReplaceAll(c.appName, " ", "-")))
}

// Register sends the instance record. Failures are returned so the caller
// can log them; registration never blocks the request path.
func (c *EurekaClient) Register(ctx context.Context) error {
	hostname, err := os.Hostname()
	if err != nil || hostname == "" {
		hostname = "localhost"
	}

	info := instanceInfo{
		InstanceID: c.instanceID,
		HostName:   hostname,
		App:        c.appName,
		IPAddr:     hostname,
		Status:     "UP",
		Port:       portInfo{Port: c.port, Enabled: "true"},
		HomePage:   fmt.Sprintf("http://%s:%d%s", hostname, c.port, c.context),
		HealthPage: fmt.Sprintf("http://%s:%d/management/health", hostname, c.port),
		DataCenter: dataCenterInfo{Class: "com.netflix.appinfo.InstanceInfo$DefaultDataCenterInfo", Name: "MyOwn"},
	}

	body, err := json.Marshal(map[string]instanceInfo{"instance": info})
	if err != nil {
		return fmt.Errorf("failed to marshal Eureka instance: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.appURL(), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create Eureka request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.username, c.password)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to register with Eureka: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("Eureka registration rejected: status %d", resp.StatusCode)
	}

	c.logger.InfoContext(ctx, "registered with Eureka", "app", c.appName, "instance_id", c.instanceID)
	return nil
}

// Heartbeat renews the lease once.
func (c *EurekaClient) Heartbeat(ctx context.Context) error {
	url := fmt.Sprintf("%s/%s", c.appURL(), c.instanceID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create heartbeat request: %w", err)
	}
	req.SetBasicAuth(c.username, c.password)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send Eureka heartbeat: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("Eureka heartbeat rejected: status %d", resp.StatusCode)
	}
	return nil
}

// Run registers and then heartbeats on the given interval until ctx is
// cancelled. Errors are logged; the loop keeps going so a flapping
// registry never takes the gateway down with it.
func (c *EurekaClient) Run(ctx context.Context, interval time.Duration) {
	if err := c.Register(ctx); err != nil {
		c.logger.ErrorContext(ctx, "Eureka registration failed", "error", err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.Heartbeat(ctx); err != nil {
				c.logger.WarnContext(ctx, "Eureka heartbeat failed", "error", err)
			}
		}
	}
}
