package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"testing"
)

type namedProvider struct{ name string }

func (n namedProvider) Name() string                                { return n.name }
func (n namedProvider) RequiresState() bool                         { return false }
func (n namedProvider) AuthURL(ctx context.Context) (string, error) { return "", nil }
func (n namedProvider) ExchangeCode(ctx context.Context, code, state string) (*TokenResponse, error) {
	return nil, nil
}
func (n namedProvider) FetchProfile(ctx context.Context, accessToken string) (*Profile, error) {
	return nil, nil
}

func TestRegistryGet(t *testing.T) {
	r := NewRegistry(namedProvider{"kakao"}, namedProvider{"google"})

	p, err := r.Get("kakao")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if p.Name() != "kakao" {
		t.Fatalf("name = %q", p.Name())
	}

	if _, err := r.Get("github"); !errors.Is(err, ErrUnknownProvider) {
		t.Fatalf("want ErrUnknownProvider, got %v", err)
	}
}

func TestRegistryNames(t *testing.T) {
	r := NewRegistry(namedProvider{"naver"}, namedProvider{"kakao"})
	names := r.Names()
	sort.Strings(names)
	if len(names) != 2 || names[0] != "kakao" || names[1] != "naver" {
		t.Fatalf("names = %v", names)
	}
}

func TestSecondsAcceptsNumberAndString(t *testing.T) {
	var tr TokenResponse
	if err := json.Unmarshal([]byte(`{"access_token":"a","expires_in":3600}`), &tr); err != nil {
		t.Fatalf("number form: %v", err)
	}
	if tr.ExpiresIn != 3600 {
		t.Fatalf("expires_in = %d", tr.ExpiresIn)
	}

	tr = TokenResponse{}
	if err := json.Unmarshal([]byte(`{"access_token":"a","expires_in":"3600"}`), &tr); err != nil {
		t.Fatalf("string form: %v", err)
	}
	if tr.ExpiresIn != 3600 {
		t.Fatalf("expires_in = %d", tr.ExpiresIn)
	}
}
