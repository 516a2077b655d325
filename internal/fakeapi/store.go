package fakeapi

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/citysafe/citysafe-go/internal/models"
)

// Store is the in-memory state behind the gateway double. It holds exactly
// what the SDK's endpoints need and nothing survives the process.
type Store struct {
	mu        sync.Mutex
	users     map[string]*account
	posts     map[string]*models.Post
	locations []models.LocationCount
	reports   []models.CrimeReport
}

type account struct {
	user         models.User
	passwordHash []byte
}

func NewStore() *Store {
	return &Store{
		users: make(map[string]*account),
		posts: make(map[string]*models.Post),
	}
}

// SeedLocations installs the per-area incident counts served by the map
// endpoint.
func (s *Store) SeedLocations(locations []models.LocationCount) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locations = locations
}

// SeedReports installs the crime report feed.
func (s *Store) SeedReports(reports []models.CrimeReport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports = reports
}

func (s *Store) createUser(name, userID, email string, passwordHash []byte) (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.users {
		if a.user.Email == email || a.user.UserID == userID {
			return models.User{}, false
		}
	}

	user := models.User{
		ID:        uuid.NewString(),
		Name:      name,
		UserID:    userID,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}
	s.users[user.ID] = &account{user: user, passwordHash: passwordHash}
	return user, true
}

func (s *Store) userByEmail(email string) (*account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.users {
		if a.user.Email == email {
			return a, true
		}
	}
	return nil, false
}

func (s *Store) userByID(id string) (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.users[id]
	if !ok {
		return models.User{}, false
	}
	return a.user, true
}

func (s *Store) updateUser(id string, update func(*models.User)) (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.users[id]
	if !ok {
		return models.User{}, false
	}
	update(&a.user)
	return a.user, true
}

func (s *Store) createPost(p models.Post) models.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = uuid.NewString()
	p.Time = time.Now().UTC()
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.Comments == nil {
		p.Comments = []models.Comment{}
	}
	s.posts[p.ID] = &p
	return p
}

func (s *Store) postByID(id string) (models.Post, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return models.Post{}, false
	}
	return clonePost(p), true
}

func (s *Store) allPosts() []models.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Post, 0, len(s.posts))
	for _, p := range s.posts {
		out = append(out, clonePost(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Time.After(out[j].Time) })
	return out
}

func (s *Store) postsByUser(userID string) []models.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Post{}
	for _, p := range s.posts {
		if p.User.ID == userID {
			out = append(out, clonePost(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Time.After(out[j].Time) })
	return out
}

func (s *Store) deletePost(id, ownerID string) (found, owned bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return false, false
	}
	if p.User.ID != ownerID {
		return true, false
	}
	delete(s.posts, id)
	return true, true
}

// mutatePost runs f on the stored post under the lock and returns a copy of
// the result.
func (s *Store) mutatePost(id string, f func(*models.Post)) (models.Post, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return models.Post{}, false
	}
	f(p)
	return clonePost(p), true
}

// toggleVote flips the user's vote of one kind and clears the opposing one,
// the same semantics the optimistic client assumes.
func (s *Store) toggleVote(postID, userID string, like bool) (models.Post, bool) {
	return s.mutatePost(postID, func(p *models.Post) {
		target, other := &p.Likes, &p.DownVotes
		if !like {
			target, other = &p.DownVotes, &p.Likes
		}
		if removeUser(target, userID) {
			return
		}
		target.Users = append(target.Users, userID)
		target.Count++
		removeUser(other, userID)
	})
}

func removeUser(b *models.VoteBlock, userID string) bool {
	for i, u := range b.Users {
		if u == userID {
			b.Users = append(b.Users[:i], b.Users[i+1:]...)
			if b.Count > 0 {
				b.Count--
			}
			return true
		}
	}
	return false
}

func (s *Store) crimeLocations() []models.LocationCount {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.LocationCount, len(s.locations))
	copy(out, s.locations)
	return out
}

func (s *Store) crimeReports() []models.CrimeReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.CrimeReport, len(s.reports))
	copy(out, s.reports)
	return out
}

func clonePost(p *models.Post) models.Post {
	out := *p
	out.Tags = append([]string(nil), p.Tags...)
	out.Images = append([]string(nil), p.Images...)
	out.Comments = append([]models.Comment(nil), p.Comments...)
	out.Likes.Users = append([]string(nil), p.Likes.Users...)
	out.DownVotes.Users = append([]string(nil), p.DownVotes.Users...)
	return out
}
