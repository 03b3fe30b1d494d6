package quran

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dastanaron/tilawah/internal/models"
)

const (
	DefaultBaseURL  = "https://api.alquran.cloud/v1"
	DefaultAudioURL = "https://cdn.islamic.network/quran/audio/128"

	// ArabicEdition is the Uthmani script edition fetched with every surah
	ArabicEdition = "quran-uthmani"
)

// EditionType selects which editions to list
type EditionType string

const (
	EditionAudio       EditionType = "audio"
	EditionTranslation EditionType = "translation"
	EditionTafsir      EditionType = "tafsir"
)

// Client talks to the verse content provider
type Client struct {
	baseURL  string
	audioURL string
	http     *http.Client
}

// NewClient creates a client. Empty baseURL uses DefaultBaseURL; nil httpClient
// uses a client with a 15s timeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		audioURL: DefaultAudioURL,
		http:     httpClient,
	}
}

// envelope is the response wrapper used by the provider
type envelope struct {
	Code   int             `json:"code"`
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request %s: unexpected status %s", path, resp.Status)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	if env.Code != http.StatusOK {
		return fmt.Errorf("request %s: provider returned code %d (%s)", path, env.Code, env.Status)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode %s data: %w", path, err)
	}
	return nil
}

// Surahs lists all surahs
func (c *Client) Surahs(ctx context.Context) ([]models.Surah, error) {
	var out []models.Surah
	if err := c.get(ctx, "/surah", nil, &out); err != nil {
		return nil, fmt.Errorf("failed to fetch surahs: %w", err)
	}
	return out, nil
}

// SurahDetail fetches the Arabic text of a surah together with a translation
// and a tafsir edition
func (c *Client) SurahDetail(ctx context.Context, number int, translation, tafsir string) (*models.SurahDetail, error) {
	if AyahCount(number) == 0 {
		return nil, fmt.Errorf("surah %d out of range 1..%d", number, SurahCount)
	}
	editions := ArabicEdition + "," + translation + "," + tafsir
	var data []models.SurahEdition
	if err := c.get(ctx, fmt.Sprintf("/surah/%d/editions/%s", number, editions), nil, &data); err != nil {
		return nil, fmt.Errorf("failed to fetch surah %d: %w", number, err)
	}
	if len(data) < 3 {
		return nil, fmt.Errorf("failed to fetch surah %d: expected 3 editions, got %d", number, len(data))
	}

	arabic := data[0]
	detail := &models.SurahDetail{
		Surah:       arabic.Surah,
		Arabic:      arabic.Ayahs,
		Translation: data[1].Ayahs,
		Tafsir:      data[2].Ayahs,
	}
	detail.NumberOfAyahs = len(arabic.Ayahs)
	return detail, nil
}

// Editions lists editions of the given type
func (c *Client) Editions(ctx context.Context, kind EditionType) ([]models.Edition, error) {
	q := url.Values{}
	switch kind {
	case EditionAudio:
		q.Set("format", "audio")
		q.Set("language", "ar")
		q.Set("type", "versebyverse")
	case EditionTranslation, EditionTafsir:
		q.Set("format", "text")
		q.Set("type", string(kind))
	default:
		return nil, fmt.Errorf("unknown edition type %q", kind)
	}

	var out []models.Edition
	if err := c.get(ctx, "/edition", q, &out); err != nil {
		return nil, fmt.Errorf("failed to fetch %s editions: %w", kind, err)
	}
	return out, nil
}

// AudioURL returns the recitation file of ref by reciter
func (c *Client) AudioURL(reciter string, ref models.VerseRef) (string, error) {
	n, err := GlobalNumber(ref)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%s/%d.mp3", c.audioURL, reciter, n), nil
}
