package redisrepo

import "fmt"

const (
	USER_KEY     = "user:%s"     // <userID>
	FEED_RSS_KEY = "feed-rss:%s" // <feedID>
)

func UserKey(userID string) string {
	return fmt.Sprintf(USER_KEY, userID)
}

func FeedRSSKey(feedID string) string {
	return fmt.Sprintf(FEED_RSS_KEY, feedID)
}
