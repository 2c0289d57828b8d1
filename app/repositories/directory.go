package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"chirper/app/models"
)

// HTTPUserDirectory resolves author identities against a remote
// identity directory. Lookups are batched: GetUsers issues exactly one
// request no matter how many ids it is given.
type HTTPUserDirectory struct {
	baseURL string
	client  *http.Client
}

// Ensure HTTPUserDirectory implements UserDirectory
var _ UserDirectory = (*HTTPUserDirectory)(nil)

// NewHTTPUserDirectory creates a directory client for the given base
// URL. The directory is expected to serve GET {base}/users?ids=a,b,c
// returning a JSON array of user objects.
func NewHTTPUserDirectory(baseURL string) *HTTPUserDirectory {
	return &HTTPUserDirectory{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// GetUsers resolves a batch of author ids in a single request. Ids the
// directory does not know are simply absent from the result; callers
// decide whether that is an error.
func (d *HTTPUserDirectory) GetUsers(ctx context.Context, ids []string) ([]models.Author, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	q := url.Values{}
	q.Set("ids", strings.Join(ids, ","))
	reqURL := d.baseURL + "/users?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("directory request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("directory returned status %d", resp.StatusCode)
	}

	var users []models.Author
	if err := json.NewDecoder(resp.Body).Decode(&users); err != nil {
		return nil, fmt.Errorf("failed to decode directory response: %v", err)
	}
	return users, nil
}

// StaticUserDirectory serves author metadata from a fixed in-memory
// set. Used in tests and in dev runs seeded from a JSON file.
type StaticUserDirectory struct {
	users map[string]models.Author
}

// Ensure StaticUserDirectory implements UserDirectory
var _ UserDirectory = (*StaticUserDirectory)(nil)

// NewStaticUserDirectory creates a directory over the given authors.
func NewStaticUserDirectory(authors []models.Author) *StaticUserDirectory {
	users := make(map[string]models.Author, len(authors))
	for _, a := range authors {
		users[a.ID] = a
	}
	return &StaticUserDirectory{users: users}
}

// GetUsers returns the known authors among ids. Unknown ids are
// omitted, matching the remote directory's behavior.
func (d *StaticUserDirectory) GetUsers(_ context.Context, ids []string) ([]models.Author, error) {
	var users []models.Author
	for _, id := range ids {
		if a, ok := d.users[id]; ok {
			users = append(users, a)
		}
	}
	return users, nil
}
