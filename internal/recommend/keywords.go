package recommend

// TMDb TV genre ids used by the mood table.
const (
	GenreActionAdventure int64 = 10759
	GenreAnimation       int64 = 16
	GenreComedy          int64 = 35
	GenreCrime           int64 = 80
	GenreDocumentary     int64 = 99
	GenreDrama           int64 = 18
	GenreFamily          int64 = 10751
	GenreMystery         int64 = 9648
	GenreSciFiFantasy    int64 = 10765
	GenreWarPolitics     int64 = 10768
)

// GenreKeyword maps one mood keyword to a genre id.
type GenreKeyword struct {
	Keyword string
	GenreID int64
}

// DefaultMoodTable is an ordered priority list: the first keyword found in
// the user's text wins, so more specific synonyms sit above generic ones.
// Many keywords map to one genre. Do not reorder casually and never replace
// this with a map; iteration order is the contract.
var DefaultMoodTable = []GenreKeyword{
	// comedy
	{"خندیدم", GenreComedy},
	{"بخندم", GenreComedy},
	{"خنده", GenreComedy},
	{"کمدی", GenreComedy},
	{"طنز", GenreComedy},
	{"funny", GenreComedy},
	{"laugh", GenreComedy},
	{"comedy", GenreComedy},
	// drama
	{"گریه", GenreDrama},
	{"غمگین", GenreDrama},
	{"احساسی", GenreDrama},
	{"درام", GenreDrama},
	{"sad", GenreDrama},
	{"cry", GenreDrama},
	{"drama", GenreDrama},
	// mystery / suspense
	{"ترسناک", GenreMystery},
	{"ترس", GenreMystery},
	{"معمایی", GenreMystery},
	{"رازآلود", GenreMystery},
	{"scary", GenreMystery},
	{"mystery", GenreMystery},
	// crime
	{"جنایی", GenreCrime},
	{"پلیسی", GenreCrime},
	{"crime", GenreCrime},
	// action
	{"هیجان", GenreActionAdventure},
	{"اکشن", GenreActionAdventure},
	{"ماجراجویی", GenreActionAdventure},
	{"action", GenreActionAdventure},
	// sci-fi & fantasy
	{"علمی تخیلی", GenreSciFiFantasy},
	{"تخیلی", GenreSciFiFantasy},
	{"فانتزی", GenreSciFiFantasy},
	{"sci-fi", GenreSciFiFantasy},
	{"fantasy", GenreSciFiFantasy},
	// documentary
	{"مستند", GenreDocumentary},
	{"واقعی", GenreDocumentary},
	{"documentary", GenreDocumentary},
	// animation
	{"انیمیشن", GenreAnimation},
	{"کارتون", GenreAnimation},
	{"animation", GenreAnimation},
	// family
	{"خانوادگی", GenreFamily},
	{"family", GenreFamily},
	// war
	{"جنگی", GenreWarPolitics},
	{"war", GenreWarPolitics},
}

// DefaultSimilarityTriggers are the "like X" constructs that switch the
// ranker into similarity mode.
var DefaultSimilarityTriggers = []string{"شبیه", "مثل", "like"}

// DefaultStopWords are filler words stripped from the residual search query.
var DefaultStopWords = []string{
	"یه", "یک", "سریال", "فیلم", "معرفی", "کن", "بهم", "میخوام", "لطفا",
	"a", "an", "the", "show", "series", "recommend", "something", "me", "please",
}
