package mock

import (
	"context"
	"sort"
	"sync"
	"time"

	"socialgraph/app/models"
	"socialgraph/app/repositories"
)

type likeKey struct {
	postID, userID uint
}

type followKey struct {
	followerID, followingID uint
}

// Store is the shared in-memory state behind the mock repositories, so that
// existence checks and cascades behave like they do against a real database.
type Store struct {
	mutex sync.RWMutex

	users    map[uint]*models.User
	posts    map[uint]*models.Post
	comments map[uint]*models.Comment
	likes    map[likeKey]*models.Like
	follows  map[followKey]*models.Follow

	nextUserID    uint
	nextPostID    uint
	nextCommentID uint
	nextLikeID    uint
	nextFollowID  uint
}

func NewStore() *Store {
	s := &Store{}
	s.Clear()
	return s
}

// NewRepositories returns mock repositories backed by a fresh Store.
func NewRepositories() (*repositories.Repositories, *Store) {
	s := NewStore()
	return &repositories.Repositories{
		Users:    &UserRepository{s},
		Follows:  &FollowRepository{s},
		Posts:    &PostRepository{s},
		Comments: &CommentRepository{s},
		Likes:    &LikeRepository{s},
	}, s
}

func (s *Store) Clear() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.users = make(map[uint]*models.User)
	s.posts = make(map[uint]*models.Post)
	s.comments = make(map[uint]*models.Comment)
	s.likes = make(map[likeKey]*models.Like)
	s.follows = make(map[followKey]*models.Follow)
	s.nextUserID, s.nextPostID, s.nextCommentID, s.nextLikeID, s.nextFollowID = 1, 1, 1, 1, 1
}

// CommentCount returns how many comments reference postID.
func (s *Store) CommentCount(postID uint) int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	n := 0
	for _, c := range s.comments {
		if c.PostID == postID {
			n++
		}
	}
	return n
}

// LikeCount returns how many likes reference postID.
func (s *Store) LikeCount(postID uint) int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	n := 0
	for k := range s.likes {
		if k.postID == postID {
			n++
		}
	}
	return n
}

// FollowingCount returns the size of userID's following set.
func (s *Store) FollowingCount(userID uint) int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	n := 0
	for k := range s.follows {
		if k.followerID == userID {
			n++
		}
	}
	return n
}

// UserRepository implementation
type UserRepository struct{ s *Store }

func (m *UserRepository) Create(ctx context.Context, user *models.User) error {
	if err := user.BeforeCreate(nil); err != nil {
		return err
	}

	m.s.mutex.Lock()
	defer m.s.mutex.Unlock()

	for _, u := range m.s.users {
		if u.Username == user.Username || u.Email == user.Email {
			return repositories.ErrDuplicate
		}
	}
	user.ID = m.s.nextUserID
	m.s.nextUserID++
	m.s.users[user.ID] = user
	return nil
}

func (m *UserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	m.s.mutex.RLock()
	defer m.s.mutex.RUnlock()

	user, exists := m.s.users[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return user, nil
}

func (m *UserRepository) GetByLogin(ctx context.Context, login string) (*models.User, error) {
	m.s.mutex.RLock()
	defer m.s.mutex.RUnlock()

	for id := uint(1); id < m.s.nextUserID; id++ {
		if u, ok := m.s.users[id]; ok && (u.Email == login || u.Username == login) {
			return u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

// FollowRepository implementation
type FollowRepository struct{ s *Store }

func (m *FollowRepository) Add(ctx context.Context, followerID, followingID uint) (bool, error) {
	follow := &models.Follow{FollowerID: followerID, FollowingID: followingID}
	if err := follow.BeforeCreate(nil); err != nil {
		return false, err
	}

	m.s.mutex.Lock()
	defer m.s.mutex.Unlock()

	key := followKey{followerID, followingID}
	if _, exists := m.s.follows[key]; exists {
		return false, nil
	}
	follow.ID = m.s.nextFollowID
	m.s.nextFollowID++
	m.s.follows[key] = follow
	return true, nil
}

func (m *FollowRepository) Remove(ctx context.Context, followerID, followingID uint) (bool, error) {
	m.s.mutex.Lock()
	defer m.s.mutex.Unlock()

	key := followKey{followerID, followingID}
	if _, exists := m.s.follows[key]; !exists {
		return false, nil
	}
	delete(m.s.follows, key)
	return true, nil
}

func (m *FollowRepository) CountFollowers(ctx context.Context, userID uint) (int64, error) {
	m.s.mutex.RLock()
	defer m.s.mutex.RUnlock()

	var n int64
	for k := range m.s.follows {
		if k.followingID == userID {
			n++
		}
	}
	return n, nil
}

func (m *FollowRepository) CountFollowing(ctx context.Context, userID uint) (int64, error) {
	return int64(m.s.FollowingCount(userID)), nil
}

// PostRepository implementation
type PostRepository struct{ s *Store }

func (m *PostRepository) Create(ctx context.Context, post *models.Post) error {
	if err := post.BeforeCreate(nil); err != nil {
		return err
	}

	m.s.mutex.Lock()
	defer m.s.mutex.Unlock()

	post.ID = m.s.nextPostID
	m.s.nextPostID++
	m.s.posts[post.ID] = post
	return nil
}

func (m *PostRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	m.s.mutex.RLock()
	defer m.s.mutex.RUnlock()

	post, exists := m.s.posts[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return post, nil
}

func (m *PostRepository) ListByOwner(ctx context.Context, ownerID uint) ([]*models.Post, error) {
	m.s.mutex.RLock()
	defer m.s.mutex.RUnlock()

	var posts []*models.Post
	for _, post := range m.s.posts {
		if post.OwnedBy(ownerID) {
			posts = append(posts, post)
		}
	}
	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return posts[i].ID > posts[j].ID
	})
	return posts, nil
}

func (m *PostRepository) DeleteCascade(ctx context.Context, id, ownerID uint) error {
	m.s.mutex.Lock()
	defer m.s.mutex.Unlock()

	post, exists := m.s.posts[id]
	if !exists || !post.OwnedBy(ownerID) {
		return repositories.ErrNotFound
	}
	for k := range m.s.likes {
		if k.postID == id {
			delete(m.s.likes, k)
		}
	}
	for cid, c := range m.s.comments {
		if c.PostID == id {
			delete(m.s.comments, cid)
		}
	}
	delete(m.s.posts, id)
	return nil
}

// CommentRepository implementation
type CommentRepository struct{ s *Store }

func (m *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := comment.BeforeCreate(nil); err != nil {
		return err
	}

	m.s.mutex.Lock()
	defer m.s.mutex.Unlock()

	if _, exists := m.s.posts[comment.PostID]; !exists {
		return repositories.ErrNotFound
	}
	comment.ID = m.s.nextCommentID
	m.s.nextCommentID++
	m.s.comments[comment.ID] = comment
	return nil
}

func (m *CommentRepository) ListSummariesByPosts(ctx context.Context, postIDs []uint) (map[uint][]*models.CommentSummary, error) {
	m.s.mutex.RLock()
	defer m.s.mutex.RUnlock()

	wanted := make(map[uint]bool, len(postIDs))
	for _, id := range postIDs {
		wanted[id] = true
	}

	out := make(map[uint][]*models.CommentSummary)
	for id := uint(1); id < m.s.nextCommentID; id++ {
		c, ok := m.s.comments[id]
		if !ok || !wanted[c.PostID] {
			continue
		}
		username := ""
		if u, ok := m.s.users[c.UserID]; ok {
			username = u.Username
		}
		out[c.PostID] = append(out[c.PostID], &models.CommentSummary{
			ID:       c.ID,
			Comment:  c.Comment,
			Username: username,
		})
	}
	return out, nil
}

// LikeRepository implementation
type LikeRepository struct{ s *Store }

func (m *LikeRepository) Upsert(ctx context.Context, postID, userID uint) (bool, error) {
	m.s.mutex.Lock()
	defer m.s.mutex.Unlock()

	if _, exists := m.s.posts[postID]; !exists {
		return false, repositories.ErrNotFound
	}
	key := likeKey{postID, userID}
	if _, exists := m.s.likes[key]; exists {
		return false, nil
	}
	like := &models.Like{PostID: postID, UserID: userID}
	if err := like.BeforeCreate(nil); err != nil {
		return false, err
	}
	like.ID = m.s.nextLikeID
	m.s.nextLikeID++
	m.s.likes[key] = like
	return true, nil
}

func (m *LikeRepository) Delete(ctx context.Context, postID, userID uint) error {
	m.s.mutex.Lock()
	defer m.s.mutex.Unlock()

	key := likeKey{postID, userID}
	if _, exists := m.s.likes[key]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.s.likes, key)
	return nil
}

func (m *LikeRepository) CountByPosts(ctx context.Context, postIDs []uint) (map[uint]int64, error) {
	m.s.mutex.RLock()
	defer m.s.mutex.RUnlock()

	out := make(map[uint]int64)
	for _, id := range postIDs {
		for k := range m.s.likes {
			if k.postID == id {
				out[id]++
			}
		}
	}
	return out, nil
}

// TokenRepository is an in-memory TokenRepository; it ignores TTLs.
type TokenRepository struct {
	mutex   sync.Mutex
	tokens  map[string]uint
	current map[uint]string
}

func NewTokenRepository() *TokenRepository {
	return &TokenRepository{
		tokens:  make(map[string]uint),
		current: make(map[uint]string),
	}
}

func (m *TokenRepository) Save(token string, userID uint, ttl time.Duration) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.tokens[token] = userID
	m.current[userID] = token
	return nil
}

func (m *TokenRepository) Lookup(token string) (uint, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	userID, ok := m.tokens[token]
	if !ok {
		return 0, repositories.ErrNotFound
	}
	return userID, nil
}

func (m *TokenRepository) TokenForUser(userID uint) (string, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	token, ok := m.current[userID]
	if !ok {
		return "", repositories.ErrNotFound
	}
	return token, nil
}

func (m *TokenRepository) GetOrCreate(userID uint, candidate string, ttl time.Duration) (string, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if token, ok := m.current[userID]; ok {
		return token, nil
	}
	m.tokens[candidate] = userID
	m.current[userID] = candidate
	return candidate, nil
}

func (m *TokenRepository) Delete(token string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	userID, ok := m.tokens[token]
	if !ok {
		return repositories.ErrNotFound
	}
	delete(m.tokens, token)
	if m.current[userID] == token {
		delete(m.current, userID)
	}
	return nil
}
