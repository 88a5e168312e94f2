package expiry

import (
	"strings"

	"github.com/jhoicas/lot-expiry-notifications/internal/domain/entity"
)

// CollectEmails une los emails de usuarios internos y contactos externos.
// Omite vacíos y duplicados (sin distinguir mayúsculas) y conserva el orden de aparición.
func CollectEmails(users []*entity.User, partners []*entity.Partner) []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(email string) {
		email = strings.TrimSpace(email)
		if email == "" {
			return
		}
		key := strings.ToLower(email)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		out = append(out, email)
	}
	for _, u := range users {
		if u != nil {
			add(u.Email)
		}
	}
	for _, p := range partners {
		if p != nil {
			add(p.Email)
		}
	}
	return out
}
