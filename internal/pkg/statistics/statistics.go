package statistics

import (
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/chapterhub/chapterhub/app/models"
	"github.com/chapterhub/chapterhub/internal/pkg/cache"
	"github.com/chapterhub/chapterhub/internal/pkg/database"
)

const (
	CacheKeyMembersTotal   = "statistics:members:total"
	CacheKeyMembersActive  = "statistics:members:active"
	CacheKeyReferralsDaily = "statistics:referrals:daily:%s" // format with date YYYY-MM-DD
	CacheExpiration        = 30 * time.Minute
)

// StatisticsData holds the chapter dashboard figures.
type StatisticsData struct {
	TotalMembers   int `json:"total_members"`
	ActiveMembers  int `json:"active_members"`
	TodayReferrals int `json:"today_referrals"`
}

var (
	lastCacheUpdate     time.Time
	cacheUpdateMutex    sync.Mutex
	cacheUpdateInterval = 5 * time.Minute
)

// ShouldUpdateCache reports whether the cached figures are older than the
// update interval.
func ShouldUpdateCache() bool {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	return time.Since(lastCacheUpdate) > cacheUpdateInterval
}

// UpdateCacheIfNeeded refreshes the cached figures when they are stale.
func UpdateCacheIfNeeded() {
	if ShouldUpdateCache() {
		cacheUpdateMutex.Lock()
		defer cacheUpdateMutex.Unlock()

		if err := UpdateStatisticsCache(); err != nil {
			log.Printf("Failed to update statistics cache: %v", err)
		} else {
			lastCacheUpdate = time.Now()
		}
	}
}

// ResetCacheUpdateTimer forces the next UpdateCacheIfNeeded to refresh.
func ResetCacheUpdateTimer() {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	lastCacheUpdate = time.Time{}
}

// UpdateStatisticsCache recounts the dashboard figures and stores them in
// the cache.
func UpdateStatisticsCache() error {
	db := database.GetDB()

	var totalMembers int64
	if err := db.Model(&models.Member{}).Count(&totalMembers).Error; err != nil {
		log.Printf("Error counting members: %v", err)
		return err
	}

	var activeMembers int64
	if err := db.Model(&models.Member{}).Where("account_status = ?", models.AccountStatusActive).Count(&activeMembers).Error; err != nil {
		log.Printf("Error counting active members: %v", err)
		return err
	}

	today := time.Now().Format("2006-01-02")
	todayStart, _ := time.Parse("2006-01-02", today)
	todayEnd := todayStart.Add(24 * time.Hour)

	var todayReferrals int64
	if err := db.Model(&models.Referral{}).Where("created_at BETWEEN ? AND ?", todayStart, todayEnd).Count(&todayReferrals).Error; err != nil {
		log.Printf("Error counting today's referrals: %v", err)
		return err
	}

	if err := cache.Set(CacheKeyMembersTotal, strconv.FormatInt(totalMembers, 10), CacheExpiration); err != nil {
		return err
	}
	if err := cache.Set(CacheKeyMembersActive, strconv.FormatInt(activeMembers, 10), CacheExpiration); err != nil {
		return err
	}
	dailyKey := fmt.Sprintf(CacheKeyReferralsDaily, today)
	if err := cache.Set(dailyKey, strconv.FormatInt(todayReferrals, 10), CacheExpiration); err != nil {
		return err
	}

	return nil
}

// GetStatistics returns the cached dashboard figures, refreshing them first
// when they are stale. Cache misses fall back to zero rather than failing
// the dashboard.
func GetStatistics() StatisticsData {
	UpdateCacheIfNeeded()

	data := StatisticsData{}
	if v, err := cache.GetInt(CacheKeyMembersTotal); err == nil {
		data.TotalMembers = v
	}
	if v, err := cache.GetInt(CacheKeyMembersActive); err == nil {
		data.ActiveMembers = v
	}
	dailyKey := fmt.Sprintf(CacheKeyReferralsDaily, time.Now().Format("2006-01-02"))
	if v, err := cache.GetInt(dailyKey); err == nil {
		data.TodayReferrals = v
	}
	return data
}
