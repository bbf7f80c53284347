package format

// Option is one choice rendered on the subscription form. Keys match the
// label tables above.
type Option struct {
	Key   string
	Label string
}

var CommunicationFrequencyOptions = []Option{
	{Key: "weekly", Label: "Weekly Updates (Highlights and upcoming events)"},
	{Key: "biweekly", Label: "Bi-weekly Updates (Less frequent, major announcements only)"},
	{Key: "urgent_only", Label: "Only for Urgent News/Special Offers (Very infrequent)"},
}

var DiscoverySourceOptions = []Option{
	{Key: "instagram", Label: "Instagram"},
	{Key: "youtube", Label: "YouTube"},
	{Key: "live_event___performance", Label: "Live event / performance"},
	{Key: "friend_or_word_of_mouth", Label: "Friend or word of mouth"},
	{Key: "search__google__etc.", Label: "Search (Google, etc.)"},
}

var PreferredPlatformOptions = []Option{
	{Key: "instagram", Label: "Instagram"},
	{Key: "tiktok", Label: "TikTok"},
	{Key: "youtube", Label: "YouTube"},
	{Key: "facebook", Label: "Facebook"},
	{Key: "x__formally_twitter_", Label: "X (Formally Twitter)"},
	{Key: "short_form_video__reels___tiktok___shorts_", Label: "Short-form video (Reels / TikTok / Shorts)"},
	{Key: "long_form_video__youtube_", Label: "Long-form video (YouTube)"},
	{Key: "live_streams", Label: "Live Streams"},
}

var ContentPreferenceOptions = []Option{
	{Key: "behind_the_scenes_footage", Label: "Behind-the-scenes footage"},
	{Key: "exclusive_interviews_with_talent", Label: "Exclusive interviews with talent"},
	{Key: "giveaways_and_contests", Label: "Giveaways and contests"},
	{Key: "event_highlights_and_recaps", Label: "Event highlights and recaps"},
	{Key: "upcoming_schedule_previews", Label: "Upcoming schedule previews"},
	{Key: "fan_spotlights_and_interactions", Label: "Fan spotlights and interactions"},
}

var WouldShareOptions = []Option{
	{Key: "yes", Label: "Yes"},
	{Key: "maybe", Label: "Maybe"},
	{Key: "no", Label: "No"},
}
