package weibo

// RenderData mirrors the $render_data object that m.weibo.cn's page
// scripts inject into the page's runtime state.
type RenderData struct {
	Status *Status `json:"status"`
}

type Status struct {
	Id              string    `json:"id"`
	Text            string    `json:"text"` // HTML fragment
	IsLongText      bool      `json:"isLongText"`
	LongText        *LongText `json:"longText"`
	User            *User     `json:"user"`
	CreatedAt       string    `json:"created_at"`
	Pics            []*Pic    `json:"pics"`
	PageInfo        *PageInfo `json:"page_info"`
	RetweetedStatus *Status   `json:"retweeted_status"`
}

// LongText holds the full body of a long-form post whose Text field
// only carries a truncated preview.
type LongText struct {
	LongTextContent string `json:"longTextContent"`
}

type User struct {
	Id         int64  `json:"id"`
	ScreenName string `json:"screen_name"`
}

type Pic struct {
	Pid   string      `json:"pid"`
	Url   string      `json:"url"`
	Large *PicVariant `json:"large"`

	// VideoSrc is set when the "picture" is actually a video
	// placeholder. Such entries are never treated as images.
	VideoSrc string `json:"videoSrc"`
}

type PicVariant struct {
	Url string `json:"url"`
}

type PageInfo struct {
	Type      string     `json:"type"`
	MediaInfo *MediaInfo `json:"media_info"`
}

type MediaInfo struct {
	StreamUrl   string `json:"stream_url"`
	StreamUrlHd string `json:"stream_url_hd"`
}
