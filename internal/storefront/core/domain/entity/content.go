package entity

// Settings are the site-wide links fetched once per app start.
type Settings struct {
	Logo      string `json:"logo"`
	Facebook  string `json:"facebook"`
	Instagram string `json:"instagram"`
	TikTok    string `json:"tiktok"`
	Snapchat  string `json:"snapchat"`
	Twitter   string `json:"twitter"`
	WhatsApp  string `json:"whatsapp"`
}

type GalleryImage struct {
	ID    int64  `json:"id"`
	Image string `json:"image"`
}

type Partner struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Image       string `json:"image"`
	Description string `json:"description,omitempty"`
	Link        string `json:"link,omitempty"`
}

type WorkshopReview struct {
	ID              int64  `json:"id"`
	WorkshopTitle   string `json:"workshop_title"`
	WorkshopTeacher string `json:"workshop_teacher"`
	Rating          int    `json:"rating"`
	Review          string `json:"review"`
	UserNameAndDate string `json:"user_name_and_date"`
}

// MediaLink is a video or an instagram live recording.
type MediaLink struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Link  string `json:"link"`
}

// Page is one page of a paginated list. HasMore is false once the API
// returns fewer items than a full page.
type Page[T any] struct {
	Items   []T  `json:"items"`
	Page    int  `json:"page"`
	HasMore bool `json:"has_more"`
}

// MinFullPage is the item count below which a remote page is the last one.
const MinFullPage = 10

// NewRemotePage builds the page for items returned by the API.
func NewRemotePage[T any](items []T, page int) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, Page: page, HasMore: len(items) >= MinFullPage}
}

// Paginate slices all into pages of size and returns page (1-based).
func Paginate[T any](all []T, page, size int) Page[T] {
	if page < 1 {
		page = 1
	}
	start := (page - 1) * size
	if start > len(all) {
		start = len(all)
	}
	end := start + size
	if end > len(all) {
		end = len(all)
	}
	items := make([]T, end-start)
	copy(items, all[start:end])
	return Page[T]{Items: items, Page: page, HasMore: end < len(all)}
}
