package google

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	googleoauth2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"github.com/leadlens-labs/leadlens-cli/internal/core/domain"
)

// fetchSubject retrieves the signed-in user's profile from the userinfo
// endpoint and maps it onto a domain subject.
func fetchSubject(ctx context.Context, ts oauth2.TokenSource) (*domain.Subject, error) {
	svc, err := googleoauth2.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("creating userinfo service: %w", err)
	}

	info, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("fetching userinfo: %w", err)
	}

	subject := &domain.Subject{
		ID:          info.Id,
		DisplayName: info.Name,
		Email:       info.Email,
		AvatarURL:   info.Picture,
	}
	if !subject.Valid() {
		return nil, fmt.Errorf("%w: userinfo response missing id or email", domain.ErrInvalidInput)
	}

	return subject, nil
}
