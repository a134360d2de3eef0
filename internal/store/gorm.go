package store

import (
	"context"
	"errors"
	"time"

	"github.com/authorshaven/content/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{
		db: db,
	}
}

var _ Store = (*GormStore)(nil)

type GormStore struct {
	db *gorm.DB
}

// translate maps gorm errors to the store sentinels so the service layer
// never imports gorm. Requires gorm.Config{TranslateError: true}.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateKey
	default:
		return err
	}
}

func (g *GormStore) Transaction(ctx context.Context, f func(tx Store) error) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return f(&GormStore{db: tx})
	})
}

func (g *GormStore) Migrate() error {
	return model.Migrate(g.db)
}

func (g *GormStore) CreateProfile(ctx context.Context, profile *model.Profile) error {
	return translate(g.db.WithContext(ctx).Create(profile).Error)
}

func (g *GormStore) GetProfile(ctx context.Context, id string) (*model.Profile, error) {
	var profile model.Profile
	err := g.db.WithContext(ctx).Where("id = ?", id).First(&profile).Error
	if err != nil {
		return nil, translate(err)
	}
	return &profile, nil
}

func (g *GormStore) GetProfileByUsername(ctx context.Context, username string) (*model.Profile, error) {
	var profile model.Profile
	err := g.db.WithContext(ctx).Where("username = ?", username).First(&profile).Error
	if err != nil {
		return nil, translate(err)
	}
	return &profile, nil
}

func (g *GormStore) ListProfiles(ctx context.Context) ([]*model.Profile, error) {
	var profiles []*model.Profile
	err := g.db.WithContext(ctx).Order("username asc").Find(&profiles).Error
	return profiles, translate(err)
}

func (g *GormStore) UpdateProfile(ctx context.Context, profile *model.Profile) error {
	return translate(g.db.WithContext(ctx).Save(profile).Error)
}

func (g *GormStore) CreateArticle(ctx context.Context, article *model.Article) error {
	return translate(g.db.WithContext(ctx).Create(article).Error)
}

func (g *GormStore) GetArticleBySlug(ctx context.Context, slug string) (*model.Article, error) {
	var article model.Article
	err := g.db.WithContext(ctx).Where("slug = ?", slug).First(&article).Error
	if err != nil {
		return nil, translate(err)
	}
	return &article, nil
}

func (g *GormStore) GetArticleBySlugForUpdate(ctx context.Context, slug string) (*model.Article, error) {
	var article model.Article
	err := g.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("slug = ?", slug).
		First(&article).Error
	if err != nil {
		return nil, translate(err)
	}
	return &article, nil
}

func (g *GormStore) GetVisibleArticle(ctx context.Context, slug string) (*model.Article, error) {
	var article model.Article
	err := g.db.WithContext(ctx).
		Where("slug = ? AND published = ? AND activated = ?", slug, true, true).
		First(&article).Error
	if err != nil {
		return nil, translate(err)
	}
	return &article, nil
}

func (g *GormStore) ListVisibleArticles(ctx context.Context, limit, offset int) ([]*model.Article, int64, error) {
	var articles []*model.Article
	var total int64

	q := g.db.WithContext(ctx).Model(&model.Article{}).
		Where("published = ? AND activated = ?", true, true)

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	err := q.Order("created_at desc").Limit(limit).Offset(offset).Find(&articles).Error
	if err != nil {
		return nil, 0, translate(err)
	}

	return articles, total, nil
}

func (g *GormStore) UpdateArticle(ctx context.Context, article *model.Article) error {
	return translate(g.db.WithContext(ctx).Save(article).Error)
}

func (g *GormStore) CreateLike(ctx context.Context, like *model.Like) error {
	return translate(g.db.WithContext(ctx).Create(like).Error)
}

func (g *GormStore) GetLike(ctx context.Context, id string) (*model.Like, error) {
	var like model.Like
	err := g.db.WithContext(ctx).Where("id = ?", id).First(&like).Error
	if err != nil {
		return nil, translate(err)
	}
	return &like, nil
}

func (g *GormStore) GetLikeByUserArticle(ctx context.Context, userID, articleID string) (*model.Like, error) {
	var like model.Like
	err := g.db.WithContext(ctx).
		Where("user_id = ? AND article_id = ?", userID, articleID).
		First(&like).Error
	if err != nil {
		return nil, translate(err)
	}
	return &like, nil
}

func (g *GormStore) UpdateLike(ctx context.Context, like *model.Like) error {
	return translate(g.db.WithContext(ctx).Save(like).Error)
}

func (g *GormStore) DeleteLike(ctx context.Context, id string) error {
	return translate(g.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Like{}).Error)
}

func (g *GormStore) CountLikes(ctx context.Context, articleID string) (int64, int64, error) {
	var likes, dislikes int64

	err := g.db.WithContext(ctx).Model(&model.Like{}).
		Where("article_id = ? AND is_like = ?", articleID, true).
		Count(&likes).Error
	if err != nil {
		return 0, 0, translate(err)
	}

	err = g.db.WithContext(ctx).Model(&model.Like{}).
		Where("article_id = ? AND is_like = ?", articleID, false).
		Count(&dislikes).Error
	if err != nil {
		return 0, 0, translate(err)
	}

	return likes, dislikes, nil
}

func (g *GormStore) CreateFollow(ctx context.Context, follow *model.Follow) error {
	return translate(g.db.WithContext(ctx).Create(follow).Error)
}

func (g *GormStore) GetFollow(ctx context.Context, followerID, followedID string) (*model.Follow, error) {
	var follow model.Follow
	err := g.db.WithContext(ctx).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		First(&follow).Error
	if err != nil {
		return nil, translate(err)
	}
	return &follow, nil
}

func (g *GormStore) DeleteFollow(ctx context.Context, followerID, followedID string) error {
	return translate(g.db.WithContext(ctx).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&model.Follow{}).Error)
}

func (g *GormStore) ListFollowers(ctx context.Context, userID string) ([]*model.Profile, error) {
	var profiles []*model.Profile
	err := g.db.WithContext(ctx).
		Joins("JOIN follows ON follows.follower_id = profiles.id").
		Where("follows.followed_id = ?", userID).
		Order("profiles.username asc").
		Find(&profiles).Error
	return profiles, translate(err)
}

func (g *GormStore) ListFollowing(ctx context.Context, userID string) ([]*model.Profile, error) {
	var profiles []*model.Profile
	err := g.db.WithContext(ctx).
		Joins("JOIN follows ON follows.followed_id = profiles.id").
		Where("follows.follower_id = ?", userID).
		Order("profiles.username asc").
		Find(&profiles).Error
	return profiles, translate(err)
}

func (g *GormStore) ListFollowingIDs(ctx context.Context, followerID string) ([]string, error) {
	var ids []string
	err := g.db.WithContext(ctx).Model(&model.Follow{}).
		Where("follower_id = ?", followerID).
		Pluck("followed_id", &ids).Error
	return ids, translate(err)
}

func (g *GormStore) CreateNotification(ctx context.Context, notification *model.Notification) error {
	return translate(g.db.WithContext(ctx).Create(notification).Error)
}

func (g *GormStore) ListNotifications(ctx context.Context, userID string) ([]*model.Notification, error) {
	var notifications []*model.Notification
	err := g.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&notifications).Error
	return notifications, translate(err)
}

func (g *GormStore) MarkNotificationRead(ctx context.Context, id, userID string) error {
	res := g.db.WithContext(ctx).Model(&model.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read", true)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (g *GormStore) DeleteReadNotificationsBefore(ctx context.Context, cutoff time.Time) error {
	return translate(g.db.WithContext(ctx).Unscoped().
		Where("read = ? AND created_at < ?", true, cutoff).
		Delete(&model.Notification{}).Error)
}
