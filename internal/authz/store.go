package authz

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"suinocore/pkg/domain"
)

// Store owns the persisted role-permission and page-permission documents.
// Both documents follow the same lifecycle: load on first use, fall back to
// the built-in defaults when the file is absent, and replace the in-memory
// value atomically on save so permission checks immediately observe new
// grants.
type Store struct {
	rolePath string
	pagePath string

	mu    sync.RWMutex
	roles RoleMap
	pages PageMap
}

// PageMap associates page identifiers with the permission tokens that open
// them. An empty token list admits any authenticated user.
type PageMap map[string][]Permission

// NewStore constructs a store over the two document paths. Empty paths fall
// back to the conventional locations under dir.
func NewStore(dir string) *Store {
	if dir == "" {
		dir = "dados"
	}
	return &Store{
		rolePath: filepath.Join(dir, "permissions.yaml"),
		pagePath: filepath.Join(dir, "page_permissions.yaml"),
	}
}

// RoleMap returns the current role-permission map, loading the document on
// first use. A missing file yields the built-in default map.
func (s *Store) RoleMap() RoleMap {
	s.mu.RLock()
	roles := s.roles
	s.mu.RUnlock()
	if roles != nil {
		return roles
	}

	loaded := loadRoleDocument(s.rolePath)
	s.mu.Lock()
	if s.roles == nil {
		s.roles = loaded
	}
	roles = s.roles
	s.mu.Unlock()
	return roles
}

func loadRoleDocument(path string) RoleMap {
	raw, err := os.ReadFile(path)
	if err != nil {
		return DefaultRoleMap()
	}
	var doc map[string][]string
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return DefaultRoleMap()
	}
	roles := make(RoleMap, len(doc))
	for role, tokens := range doc {
		perms := make([]Permission, 0, len(tokens))
		for _, token := range tokens {
			perms = append(perms, Permission(token))
		}
		roles[role] = perms
	}
	return roles
}

// SaveRoleMap validates and persists the map, then swaps the in-memory value
// so subsequent CheckPermission calls see the new grants.
func (s *Store) SaveRoleMap(roles RoleMap) error {
	for role, perms := range roles {
		for _, perm := range perms {
			if !perm.IsValid() {
				return domain.ValidationError{Field: "permissions", Reason: fmt.Sprintf("role %s grants unknown token %q", role, perm)}
			}
		}
	}
	doc := make(map[string][]string, len(roles))
	for role, perms := range roles {
		tokens := make([]string, len(perms))
		for i, perm := range perms {
			tokens[i] = string(perm)
		}
		doc[role] = tokens
	}
	if err := writeDocument(s.rolePath, doc); err != nil {
		return err
	}

	s.mu.Lock()
	s.roles = roles.clone()
	s.mu.Unlock()
	return nil
}

// PageMap returns the current page-permission map. A missing document yields
// an empty map, which admits any authenticated user to every page.
func (s *Store) PageMap() PageMap {
	s.mu.RLock()
	pages := s.pages
	s.mu.RUnlock()
	if pages != nil {
		return pages
	}

	loaded := loadPageDocument(s.pagePath)
	s.mu.Lock()
	if s.pages == nil {
		s.pages = loaded
	}
	pages = s.pages
	s.mu.Unlock()
	return pages
}

func loadPageDocument(path string) PageMap {
	raw, err := os.ReadFile(path)
	if err != nil {
		return PageMap{}
	}
	var doc map[string][]string
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return PageMap{}
	}
	pages := make(PageMap, len(doc))
	for page, tokens := range doc {
		perms := make([]Permission, 0, len(tokens))
		for _, token := range tokens {
			perms = append(perms, Permission(token))
		}
		pages[page] = perms
	}
	return pages
}

// SavePageMap validates and persists the page gates, then swaps the
// in-memory value.
func (s *Store) SavePageMap(pages PageMap) error {
	doc := make(map[string][]string, len(pages))
	for page, perms := range pages {
		tokens := make([]string, len(perms))
		for i, perm := range perms {
			if !perm.IsValid() {
				return domain.ValidationError{Field: "page_permissions", Reason: fmt.Sprintf("page %s requires unknown token %q", page, perm)}
			}
			tokens[i] = string(perm)
		}
		doc[page] = tokens
	}
	if err := writeDocument(s.pagePath, doc); err != nil {
		return err
	}

	s.mu.Lock()
	cloned := make(PageMap, len(pages))
	for page, perms := range pages {
		cpy := make([]Permission, len(perms))
		copy(cpy, perms)
		cloned[page] = cpy
	}
	s.pages = cloned
	s.mu.Unlock()
	return nil
}

// writeDocument marshals the document and replaces the target file through a
// temp-file rename so readers never observe a partial write.
func writeDocument(path string, doc map[string][]string) error {
	raw, err := yaml.Marshal(doc)
	if err != nil {
		return domain.StorageError{Op: "marshal", Path: path, Err: err}
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return domain.StorageError{Op: "mkdir", Path: dir, Err: err}
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return domain.StorageError{Op: "create", Path: path, Err: err}
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return domain.StorageError{Op: "write", Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return domain.StorageError{Op: "close", Path: path, Err: err}
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return domain.StorageError{Op: "rename", Path: path, Err: err}
	}
	return nil
}

// CheckPermission reports whether the user holds the token. The developer
// role passes before the map is consulted.
func (s *Store) CheckPermission(user *domain.Employee, token Permission) bool {
	if user == nil {
		return false
	}
	if IsDeveloper(user) {
		return true
	}
	return s.RoleMap().Grants(user.Role, token)
}

// RequirePermission is the error-returning form of CheckPermission.
func (s *Store) RequirePermission(user *domain.Employee, token Permission) error {
	if s.CheckPermission(user, token) {
		return nil
	}
	role := ""
	if user != nil {
		role = user.Role
	}
	return domain.PermissionDeniedError{Role: role, Permission: string(token)}
}

// AllowPage reports whether the session may open the page: the user must be
// authenticated and hold at least one of the page's tokens, or the page must
// declare no tokens at all.
func (s *Store) AllowPage(session Session, pageID string) bool {
	if !session.Authenticated || session.CurrentUser == nil {
		return false
	}
	required := s.PageMap()[pageID]
	if len(required) == 0 {
		return true
	}
	for _, token := range required {
		if s.CheckPermission(session.CurrentUser, token) {
			return true
		}
	}
	return false
}

// DocumentExists reports whether a persisted role document is present, as
// opposed to the built-in defaults being in effect.
func (s *Store) DocumentExists() bool {
	_, err := os.Stat(s.rolePath)
	return !errors.Is(err, fs.ErrNotExist)
}
