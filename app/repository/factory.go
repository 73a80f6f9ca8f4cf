package repository

import (
	"sync"

	"gorm.io/gorm"
)

// Repositories bundles all repository instances
type Repositories struct {
	Member       MemberRepository
	ScoreHistory ScoreHistoryRepository
	Activity     ActivityRepository
	Champion     ChampionRepository
}

// NewRepositories creates all repositories backed by the given DB handle
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Member:       NewMemberRepository(db),
		ScoreHistory: NewScoreHistoryRepository(db),
		Activity:     NewActivityRepository(db),
		Champion:     NewChampionRepository(db),
	}
}

// Factory manages repository instances and ensures they are singletons
type Factory struct {
	db    *gorm.DB
	repos *Repositories
	once  sync.Once
}

// NewFactory creates a new repository factory
func NewFactory(db *gorm.DB) *Factory {
	return &Factory{
		db: db,
	}
}

// GetRepositories returns a singleton instance of all repositories
func (f *Factory) GetRepositories() *Repositories {
	f.once.Do(func() {
		f.repos = NewRepositories(f.db)
	})
	return f.repos
}

// GetMemberRepository returns the member repository instance
func (f *Factory) GetMemberRepository() MemberRepository {
	return f.GetRepositories().Member
}

// GetScoreHistoryRepository returns the score history repository instance
func (f *Factory) GetScoreHistoryRepository() ScoreHistoryRepository {
	return f.GetRepositories().ScoreHistory
}

// GetActivityRepository returns the activity repository instance
func (f *Factory) GetActivityRepository() ActivityRepository {
	return f.GetRepositories().Activity
}

// GetChampionRepository returns the champion repository instance
func (f *Factory) GetChampionRepository() ChampionRepository {
	return f.GetRepositories().Champion
}

// Global factory instance
var globalFactory *Factory
var factoryOnce sync.Once

// InitializeFactory initializes the global repository factory
func InitializeFactory(db *gorm.DB) {
	factoryOnce.Do(func() {
		globalFactory = NewFactory(db)
	})
}

// GetGlobalFactory returns the global repository factory instance
func GetGlobalFactory() *Factory {
	if globalFactory == nil {
		panic("Repository factory not initialized. Call InitializeFactory first.")
	}
	return globalFactory
}

// GetGlobalRepositories returns the global repositories instance
func GetGlobalRepositories() *Repositories {
	return GetGlobalFactory().GetRepositories()
}
