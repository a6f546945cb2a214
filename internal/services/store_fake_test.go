package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/wavely-app/backend/internal/models"
	"github.com/wavely-app/backend/internal/pagination"
	"github.com/wavely-app/backend/internal/repositories"
	"gorm.io/gorm"
)

// memStore is a behavioral in-memory Store for service tests. It enforces
// the same store-level guarantees the Postgres implementation relies on:
// the (post, user) unique index on likes, the unique follow edge, clamped
// atomic counter arithmetic, and RowsAffected-style not-found reporting.
// Transaction runs the closure against the same state without rollback;
// tests therefore assert on operation ordering, not on rollback replay.
type memStore struct {
	mu sync.Mutex

	seq      uint
	now      time.Time
	users    map[uint]*models.User
	posts    map[uint]*models.Post
	comments map[uint]*models.Comment
	likes    map[uint]*models.Like
	follows  map[uint]*models.Follow
	videos   map[uint]*models.Video
}

func newMemStore() *memStore {
	return &memStore{
		now:      time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		users:    make(map[uint]*models.User),
		posts:    make(map[uint]*models.Post),
		comments: make(map[uint]*models.Comment),
		likes:    make(map[uint]*models.Like),
		follows:  make(map[uint]*models.Follow),
		videos:   make(map[uint]*models.Video),
	}
}

func (s *memStore) nextID() uint {
	s.seq++
	return s.seq
}

// tick returns strictly increasing fake timestamps
func (s *memStore) tick() time.Time {
	s.now = s.now.Add(time.Second)
	return s.now
}

func (s *memStore) Users() repositories.UserRepository       { return (*fakeUsers)(s) }
func (s *memStore) Posts() repositories.PostRepository       { return (*fakePosts)(s) }
func (s *memStore) Comments() repositories.CommentRepository { return (*fakeComments)(s) }
func (s *memStore) Likes() repositories.LikeRepository       { return (*fakeLikes)(s) }
func (s *memStore) Follows() repositories.FollowRepository   { return (*fakeFollows)(s) }
func (s *memStore) Videos() repositories.VideoRepository     { return (*fakeVideos)(s) }

func (s *memStore) Transaction(_ context.Context, fn func(repositories.Store) error) error {
	return fn(s)
}

// --- test seeding helpers ---

func (s *memStore) seedUser(name, email string) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := &models.User{ID: s.nextID(), Name: name, Email: email, CreatedAt: s.tick()}
	s.users[u.ID] = u
	return u
}

func (s *memStore) seedPost(userID uint, content string) *models.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := &models.Post{ID: s.nextID(), UserID: userID, Content: content, CreatedAt: s.tick()}
	p.UpdatedAt = p.CreatedAt
	s.posts[p.ID] = p
	return p
}

func (s *memStore) seedPostAt(userID uint, content string, at time.Time) *models.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := &models.Post{ID: s.nextID(), UserID: userID, Content: content, CreatedAt: at, UpdatedAt: at}
	s.posts[p.ID] = p
	return p
}

func (s *memStore) seedFollow(followerID, followingID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := &models.Follow{ID: s.nextID(), FollowerID: followerID, FollowingID: followingID, CreatedAt: s.tick()}
	s.follows[f.ID] = f
}

func (s *memStore) likeRowCount(postID uint) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, l := range s.likes {
		if l.PostID == postID {
			n++
		}
	}
	return n
}

func (s *memStore) commentRowCount(postID uint) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.comments {
		if c.PostID == postID {
			n++
		}
	}
	return n
}

// --- users ---

type fakeUsers memStore

func (f *fakeUsers) CreateUser(_ context.Context, user *models.User) error {
	s := (*memStore)(f)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	user.ID = s.nextID()
	user.CreatedAt = s.tick()
	user.UpdatedAt = user.CreatedAt
	s.users[user.ID] = user
	return nil
}

func (f *fakeUsers) GetUserByID(_ context.Context, id uint) (*models.User, error) {
	s := (*memStore)(f)
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s := (*memStore)(f)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUsers) GetUserByFirebaseUID(_ context.Context, uid string) (*models.User, error) {
	s := (*memStore)(f)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.FirebaseUID != nil && *u.FirebaseUID == uid {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUsers) UpdateUser(_ context.Context, user *models.User) error {
	s := (*memStore)(f)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

func (f *fakeUsers) DeleteUser(_ context.Context, id uint) error {
	s := (*memStore)(f)
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
	return nil
}

func (f *fakeUsers) SearchUsers(_ context.Context, query string, limit, offset int) ([]models.User, error) {
	s := (*memStore)(f)
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.User
	q := strings.ToLower(query)
	for _, u := range s.users {
		if strings.Contains(strings.ToLower(u.Name), q) || strings.Contains(strings.ToLower(u.Email), q) {
			out = append(out, *u)
		}
	}
	return window(out, limit, offset), nil
}

// --- posts ---

type fakePosts memStore

func (f *fakePosts) CreatePost(_ context.Context, post *models.Post) error {
	s := (*memStore)(f)
	s.mu.Lock()
	defer s.mu.Unlock()
	post.ID = s.nextID()
	if post.CreatedAt.IsZero() {
		post.CreatedAt = s.tick()
	}
	post.UpdatedAt = post.CreatedAt
	cp := *post
	s.posts[post.ID] = &cp
	return nil
}

func (f *fakePosts) GetPostByID(_ context.Context, id uint) (*models.Post, error) {
	s := (*memStore)(f)
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePosts) GetPostsByUserID(_ context.Context, userID uint, limit, offset int) ([]models.Post, error) {
	s := (*memStore)(f)
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Post
	for _, p := range s.posts {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	sortPostsDesc(out)
	return window(out, limit, offset), nil
}

func (f *fakePosts) UpdatePost(_ context.Context, post *models.Post) error {
	s := (*memStore)(f)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[post.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *post
	s.posts[post.ID] = &cp
	return nil
}

func (f *fakePosts) DeletePost(_ context.Context, id uint) error {
	s := (*memStore)(f)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.posts, id)
	return nil
}

func (f *fakePosts) IncrementCounter(_ context.Context, postID uint, field repositories.CounterField, delta int) error {
	s := (*memStore)(f)
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[postID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	clamp := func(n int) int {
		if n < 0 {
			return 0
		}
		return n
	}
	switch field {
	case repositories.CounterLikes:
		p.LikesCount = clamp(p.LikesCount + delta)
	case repositories.CounterComments:
		p.CommentsCount = clamp(p.CommentsCount + delta)
	case repositories.CounterShares:
		p.SharesCount = clamp(p.SharesCount + delta)
	default:
		return gorm.ErrInvalidField
	}
	return nil
}

func (f *fakePosts) ListFeed(_ context.Context, viewerID uint, cursor *pagination.Cursor, limit int) ([]models.FeedPost, error) {
	s := (*memStore)(f)
	s.mu.Lock()
	defer s.mu.Unlock()

	followed := make(map[uint]bool)
	for _, e := range s.follows {
		if e.FollowerID == viewerID {
			followed[e.FollowingID] = true
		}
	}

	var rows []models.FeedPost
	for _, p := range s.posts {
		if p.UserID != viewerID && !followed[p.UserID] {
			continue
		}
		if cursor != nil {
			after := p.CreatedAt.Before(cursor.CreatedAt) ||
				(p.CreatedAt.Equal(cursor.CreatedAt) && p.ID < cursor.ID)
			if !after {
				continue
			}
		}
		row := models.FeedPost{
			ID:            p.ID,
			UserID:        p.UserID,
			Content:       p.Content,
			MediaURL:      p.MediaURL,
			LikesCount:    p.LikesCount,
			CommentsCount: p.CommentsCount,
			SharesCount:   p.SharesCount,
			CreatedAt:     p.CreatedAt,
			UpdatedAt:     p.UpdatedAt,
		}
		if author, ok := s.users[p.UserID]; ok {
			row.AuthorName = author.Name
			row.AuthorEmail = author.Email
			row.AuthorAvatar = author.AvatarURL
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].CreatedAt.Equal(rows[j].CreatedAt) {
			return rows[i].CreatedAt.After(rows[j].CreatedAt)
		}
		return rows[i].ID > rows[j].ID
	})
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

// --- comments ---

type fakeComments memStore

func (f *fakeComments) CreateComment(_ context.Context, comment *models.Comment) error {
	s := (*memStore)(f)
	s.mu.Lock()
	defer s.mu.Unlock()
	comment.ID = s.nextID()
	comment.CreatedAt = s.tick()
	comment.UpdatedAt = comment.CreatedAt
	cp := *comment
	s.comments[comment.ID] = &cp
	return nil
}

func (f *fakeComments) GetCommentByID(_ context.Context, id uint) (*models.Comment, error) {
	s := (*memStore)(f)
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.comments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeComments) GetCommentsByPostID(_ context.Context, postID uint, limit, offset int) ([]models.CommentView, error) {
	s := (*memStore)(f)
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.CommentView
	for _, c := range s.comments {
		if c.PostID != postID {
			continue
		}
		view := models.CommentView{
			ID:         c.ID,
			PostID:     c.PostID,
			UserID:     c.UserID,
			Content:    c.Content,
			LikesCount: c.LikesCount,
			CreatedAt:  c.CreatedAt,
			UpdatedAt:  c.UpdatedAt,
		}
		if author, ok := s.users[c.UserID]; ok {
			view.AuthorName = author.Name
			view.AuthorEmail = author.Email
			view.AuthorAvatar = author.AvatarURL
		}
		out = append(out, view)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return window(out, limit, offset), nil
}

func (f *fakeComments) UpdateComment(_ context.Context, comment *models.Comment) error {
	s := (*memStore)(f)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.comments[comment.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *comment
	s.comments[comment.ID] = &cp
	return nil
}

func (f *fakeComments) DeleteComment(_ context.Context, id uint) error {
	s := (*memStore)(f)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.comments[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.comments, id)
	return nil
}

func (f *fakeComments) CountByPostID(_ context.Context, postID uint) (int64, error) {
	return int64((*memStore)(f).commentRowCount(postID)), nil
}

func (f *fakeComments) DeleteByPostID(_ context.Context, postID uint) error {
	s := (*memStore)(f)
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, c := range s.comments {
		if c.PostID == postID {
			delete(s.comments, id)
		}
	}
	return nil
}

// --- likes ---

type fakeLikes memStore

func (f *fakeLikes) CreateLike(_ context.Context, like *models.Like) error {
	s := (*memStore)(f)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.likes {
		if l.PostID == like.PostID && l.UserID == like.UserID {
			return gorm.ErrDuplicatedKey
		}
	}
	like.ID = s.nextID()
	like.CreatedAt = s.tick()
	cp := *like
	s.likes[like.ID] = &cp
	return nil
}

func (f *fakeLikes) DeleteLike(_ context.Context, postID, userID uint) error {
	s := (*memStore)(f)
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, l := range s.likes {
		if l.PostID == postID && l.UserID == userID {
			delete(s.likes, id)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeLikes) GetLikesByPostID(_ context.Context, postID uint, limit, offset int) ([]models.LikeView, error) {
	s := (*memStore)(f)
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.LikeView
	for _, l := range s.likes {
		if l.PostID != postID {
			continue
		}
		view := models.LikeView{UserID: l.UserID, LikedAt: l.CreatedAt}
		if u, ok := s.users[l.UserID]; ok {
			view.Name = u.Name
			view.Email = u.Email
			view.AvatarURL = u.AvatarURL
		}
		out = append(out, view)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LikedAt.After(out[j].LikedAt) })
	return window(out, limit, offset), nil
}

func (f *fakeLikes) CountByPostID(_ context.Context, postID uint) (int64, error) {
	return int64((*memStore)(f).likeRowCount(postID)), nil
}

func (f *fakeLikes) HasUserLikedPost(_ context.Context, postID, userID uint) (bool, error) {
	s := (*memStore)(f)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.likes {
		if l.PostID == postID && l.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeLikes) DeleteByPostID(_ context.Context, postID uint) error {
	s := (*memStore)(f)
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, l := range s.likes {
		if l.PostID == postID {
			delete(s.likes, id)
		}
	}
	return nil
}

// --- follows ---

type fakeFollows memStore

func (f *fakeFollows) CreateFollow(_ context.Context, follow *models.Follow) error {
	s := (*memStore)(f)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.follows {
		if e.FollowerID == follow.FollowerID && e.FollowingID == follow.FollowingID {
			return gorm.ErrDuplicatedKey
		}
	}
	follow.ID = s.nextID()
	follow.CreatedAt = s.tick()
	cp := *follow
	s.follows[follow.ID] = &cp
	return nil
}

func (f *fakeFollows) DeleteFollow(_ context.Context, followerID, followingID uint) error {
	s := (*memStore)(f)
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, e := range s.follows {
		if e.FollowerID == followerID && e.FollowingID == followingID {
			delete(s.follows, id)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeFollows) IsFollowing(_ context.Context, followerID, followingID uint) (bool, error) {
	s := (*memStore)(f)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.follows {
		if e.FollowerID == followerID && e.FollowingID == followingID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeFollows) GetFollowers(_ context.Context, userID uint, limit, offset int) ([]models.User, error) {
	s := (*memStore)(f)
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.User
	for _, e := range s.follows {
		if e.FollowingID == userID {
			if u, ok := s.users[e.FollowerID]; ok {
				out = append(out, *u)
			}
		}
	}
	return window(out, limit, offset), nil
}

func (f *fakeFollows) GetFollowing(_ context.Context, userID uint, limit, offset int) ([]models.User, error) {
	s := (*memStore)(f)
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.User
	for _, e := range s.follows {
		if e.FollowerID == userID {
			if u, ok := s.users[e.FollowingID]; ok {
				out = append(out, *u)
			}
		}
	}
	return window(out, limit, offset), nil
}

func (f *fakeFollows) GetFollowersCount(_ context.Context, userID uint) (int64, error) {
	s := (*memStore)(f)
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, e := range s.follows {
		if e.FollowingID == userID {
			n++
		}
	}
	return n, nil
}

func (f *fakeFollows) GetFollowingCount(_ context.Context, userID uint) (int64, error) {
	s := (*memStore)(f)
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, e := range s.follows {
		if e.FollowerID == userID {
			n++
		}
	}
	return n, nil
}

// --- videos ---

type fakeVideos memStore

func (f *fakeVideos) CreateVideo(_ context.Context, video *models.Video) error {
	s := (*memStore)(f)
	s.mu.Lock()
	defer s.mu.Unlock()
	video.ID = s.nextID()
	video.CreatedAt = s.tick()
	video.UpdatedAt = video.CreatedAt
	cp := *video
	s.videos[video.ID] = &cp
	return nil
}

func (f *fakeVideos) GetVideoByID(_ context.Context, id uint) (*models.VideoView, error) {
	s := (*memStore)(f)
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.videos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s.videoView(v), nil
}

func (f *fakeVideos) ListVideos(_ context.Context, limit, offset int) ([]models.VideoView, error) {
	s := (*memStore)(f)
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.VideoView
	for _, v := range s.videos {
		out = append(out, *s.videoView(v))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return window(out, limit, offset), nil
}

func (f *fakeVideos) UpdateVideoDetails(_ context.Context, id uint, title, description string) error {
	s := (*memStore)(f)
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.videos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	v.Title = title
	v.Description = description
	v.UpdatedAt = s.tick()
	return nil
}

func (f *fakeVideos) DeleteVideo(_ context.Context, id uint) error {
	s := (*memStore)(f)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.videos[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.videos, id)
	return nil
}

func (f *fakeVideos) IncrementViews(_ context.Context, id uint) error {
	s := (*memStore)(f)
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.videos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	v.ViewsCount++
	return nil
}

func (s *memStore) videoView(v *models.Video) *models.VideoView {
	view := &models.VideoView{
		ID:           v.ID,
		UserID:       v.UserID,
		Title:        v.Title,
		Description:  v.Description,
		FileURL:      v.FileURL,
		ThumbnailURL: v.ThumbnailURL,
		DurationSecs: v.DurationSecs,
		ViewsCount:   v.ViewsCount,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
	if u, ok := s.users[v.UserID]; ok {
		view.UserEmail = u.Email
	}
	return view
}

// window applies offset/limit to a sorted slice
func window[T any](in []T, limit, offset int) []T {
	if offset >= len(in) {
		return nil
	}
	in = in[offset:]
	if limit > 0 && len(in) > limit {
		in = in[:limit]
	}
	return in
}

func sortPostsDesc(posts []models.Post) {
	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return posts[i].ID > posts[j].ID
	})
}
