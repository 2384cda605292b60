package builtin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	toolcore "github.com/mizunoe/kaiwa/internal/tool"
)

const (
	defaultWeatherBaseURL = "https://api.openweathermap.org/data/2.5/weather"
	defaultWeatherUnits   = "metric"
	defaultWeatherLang    = "en"
)

type owmWeatherDesc struct {
	Main        string `json:"main"`
	Description string `json:"description"`
}

type owmMain struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	Humidity  int     `json:"humidity"`
}

type owmWind struct {
	Speed float64 `json:"speed"`
}

type owmSys struct {
	Country string `json:"country"`
}

type owmResponse struct {
	Name    string           `json:"name"`
	Weather []owmWeatherDesc `json:"weather"`
	Main    owmMain          `json:"main"`
	Wind    owmWind          `json:"wind"`
	Sys     owmSys           `json:"sys"`
}

func init() {
	toolcore.RegisterBuiltin("weather", func(options toolcore.BuiltinOptions) (toolcore.Tool, error) {
		timeout := options.WeatherTimeout
		if timeout <= 0 {
			timeout = toolcore.DefaultBuiltinWeatherTimeout
		}

		baseURL := strings.TrimSpace(options.WeatherBaseURL)
		if baseURL == "" {
			baseURL = defaultWeatherBaseURL
		}

		return &WeatherTool{
			Client:  &http.Client{Timeout: timeout},
			BaseURL: baseURL,
			APIKey:  strings.TrimSpace(options.WeatherAPIKey),
			Units:   options.WeatherUnits,
			Lang:    options.WeatherLang,
		}, nil
	})
}

// WeatherTool fetches current weather for a location. A missing credential
// degrades to a tool-level failure, never a server error.
type WeatherTool struct {
	Client  *http.Client
	BaseURL string
	APIKey  string
	Units   string
	Lang    string
}

func (t *WeatherTool) Name() string { return "weather" }

func (t *WeatherTool) Description() string {
	return "Get the current weather for a location."
}

func (t *WeatherTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"location": map[string]interface{}{
				"type":        "string",
				"description": "Location in text format (for example: Berlin or San Francisco, US)",
			},
			"units": map[string]interface{}{
				"type":        "string",
				"description": "Unit system: metric or imperial (optional)",
			},
			"lang": map[string]interface{}{
				"type":        "string",
				"description": "Language code for the condition text (optional)",
			},
		},
		"required": []string{"location"},
	}
}

func (t *WeatherTool) Execute(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var args struct {
		Location string `json:"location"`
		Units    string `json:"units"`
		Lang     string `json:"lang"`
	}
	if err := json.Unmarshal(input, &args); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}

	location := strings.TrimSpace(args.Location)
	if location == "" {
		return nil, fmt.Errorf("location is required")
	}

	if t.APIKey == "" {
		return nil, fmt.Errorf("weather API credential not configured")
	}

	endpoint, err := t.endpoint(location, args.Units, args.Lang)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	client := t.Client
	if client == nil {
		client = &http.Client{Timeout: toolcore.DefaultBuiltinWeatherTimeout}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("location not found: %s", location)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("weather API error: %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}

	var payload owmResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode weather response: %v", err)
	}

	condition := ""
	if len(payload.Weather) > 0 {
		condition = payload.Weather[0].Description
		if condition == "" {
			condition = payload.Weather[0].Main
		}
	}

	resolved := payload.Name
	if payload.Sys.Country != "" {
		resolved = resolved + ", " + payload.Sys.Country
	}

	return toolcore.Success(map[string]interface{}{
		"location":    resolved,
		"temperature": payload.Main.Temp,
		"feelsLike":   payload.Main.FeelsLike,
		"humidity":    payload.Main.Humidity,
		"windSpeed":   payload.Wind.Speed,
		"condition":   condition,
		"units":       t.unitsOrDefault(args.Units),
	})
}

func (t *WeatherTool) endpoint(location, units, lang string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(t.BaseURL))
	if err != nil {
		return "", fmt.Errorf("invalid weather endpoint: %w", err)
	}
	if strings.TrimSpace(parsed.Scheme) == "" || strings.TrimSpace(parsed.Host) == "" {
		return "", fmt.Errorf("invalid weather endpoint")
	}

	q := parsed.Query()
	q.Set("q", location)
	q.Set("units", t.unitsOrDefault(units))
	q.Set("lang", t.langOrDefault(lang))
	q.Set("appid", t.APIKey)
	parsed.RawQuery = q.Encode()

	return parsed.String(), nil
}

func (t *WeatherTool) unitsOrDefault(units string) string {
	units = strings.TrimSpace(units)
	if units != "" {
		return units
	}
	if strings.TrimSpace(t.Units) != "" {
		return t.Units
	}
	return defaultWeatherUnits
}

func (t *WeatherTool) langOrDefault(lang string) string {
	lang = strings.TrimSpace(lang)
	if lang != "" {
		return lang
	}
	if strings.TrimSpace(t.Lang) != "" {
		return t.Lang
	}
	return defaultWeatherLang
}
