package steam

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/backlogbot/backlog-bot/backlogbot/config"
	"github.com/backlogbot/backlog-bot/internal/domain/backlog"
)

// Client talks to the public Steam Web API and the storefront API.
type Client struct {
	httpClient   *http.Client
	apiBaseURL   string
	storeBaseURL string
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

func WithAPIBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.apiBaseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

func WithStoreBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.storeBaseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: config.DefaultHTTPTimeout,
		},
		apiBaseURL:   config.DefaultSteamAPIBaseURL,
		storeBaseURL: config.DefaultSteamStoreBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type appListResponse struct {
	AppList struct {
		Apps []struct {
			AppID int    `json:"appid"`
			Name  string `json:"name"`
		} `json:"apps"`
	} `json:"applist"`
}

type appDetailsResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

type appDetailsData struct {
	SteamAppID        int    `json:"steam_appid"`
	Name              string `json:"name"`
	ShortDescription  string `json:"short_description"`
	HeaderImage       string `json:"header_image"`
	IsFree            bool   `json:"is_free"`
	ControllerSupport string `json:"controller_support"`
	PriceOverview     *struct {
		Currency       string `json:"currency"`
		FinalFormatted string `json:"final_formatted"`
	} `json:"price_overview"`
}

// FetchCatalog returns every app Steam lists, in the order Steam returns them.
func (c *Client) FetchCatalog(ctx context.Context) ([]backlog.GameSummary, error) {
	var resp appListResponse
	if err := c.getJSON(ctx, c.apiBaseURL+"/ISteamApps/GetAppList/v2", &resp); err != nil {
		return nil, err
	}

	catalog := make([]backlog.GameSummary, 0, len(resp.AppList.Apps))
	for _, app := range resp.AppList.Apps {
		catalog = append(catalog, backlog.GameSummary{AppID: app.AppID, Name: app.Name})
	}
	return catalog, nil
}

// FetchDetail returns the store page of a single app. Steam wraps the payload under the
// requested id and reports unknown apps with success=false and no data.
func (c *Client) FetchDetail(ctx context.Context, appID int) (*backlog.GameDetail, error) {
	id := strconv.Itoa(appID)
	endpoint := c.storeBaseURL + "/api/appdetails?appids=" + url.QueryEscape(id)

	var resp map[string]appDetailsResponse
	if err := c.getJSON(ctx, endpoint, &resp); err != nil {
		return nil, err
	}

	entry, ok := resp[id]
	if !ok || !entry.Success || len(entry.Data) == 0 || string(entry.Data) == "null" {
		return nil, fmt.Errorf("%w: app %d", backlog.ErrUpstreamNotFound, appID)
	}

	var data appDetailsData
	if err := json.Unmarshal(entry.Data, &data); err != nil {
		return nil, fmt.Errorf("%w: app %d: %v", backlog.ErrDecode, appID, err)
	}

	detail := &backlog.GameDetail{
		AppID:             data.SteamAppID,
		Name:              data.Name,
		ShortDescription:  data.ShortDescription,
		HeaderImage:       data.HeaderImage,
		IsFree:            data.IsFree,
		ControllerSupport: data.ControllerSupport,
	}
	if detail.AppID == 0 {
		detail.AppID = appID
	}
	if data.PriceOverview != nil && data.PriceOverview.FinalFormatted != "" {
		price := data.PriceOverview.FinalFormatted
		detail.Price = &price
	}
	return detail, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, v any) error {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", backlog.ErrNetwork, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Error("Steam request failed",
			slog.String("type", "sys"),
			slog.String("url", endpoint),
			slog.Duration("took", time.Since(start)),
			slog.Any("error", err))
		return fmt.Errorf("%w: GET %s: %v", backlog.ErrNetwork, endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: GET %s: status %d", backlog.ErrNetwork, endpoint, resp.StatusCode)
	}

	if err = json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: GET %s: %v", backlog.ErrDecode, endpoint, err)
	}

	slog.Debug("Steam request completed",
		slog.String("type", "sys"),
		slog.String("url", endpoint),
		slog.Duration("took", time.Since(start)))
	return nil
}
