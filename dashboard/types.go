package dashboard

// Resource payloads of the academy API. Bilingual fields come in _ar/_en
// pairs throughout.

type Semester struct {
	ID                string  `json:"id"`
	NameAr            string  `json:"name_ar"`
	NameEn            string  `json:"name_en"`
	Slug              string  `json:"slug"`
	DescriptionAr     string  `json:"description_ar"`
	DescriptionEn     string  `json:"description_en"`
	ImageURLAr        string  `json:"image_url_ar"`
	ImageURLEn        string  `json:"image_url_en"`
	PromotionVideoURL string  `json:"promotion_video_url"`
	Price             float64 `json:"price"`
	CreatedAt         string  `json:"created_at"`
	UpdatedAt         string  `json:"updated_at"`
	DeletedAt         *string `json:"deleted_at"`
}

type Course struct {
	ID                string  `json:"id"`
	NameAr            string  `json:"name_ar"`
	NameEn            string  `json:"name_en"`
	Slug              string  `json:"slug"`
	DescriptionAr     string  `json:"description_ar"`
	DescriptionEn     string  `json:"description_en"`
	AboutAr           *string `json:"about_ar"`
	AboutEn           *string `json:"about_en"`
	BenefitsAr        *string `json:"benefits_ar"`
	BenefitsEn        *string `json:"benefits_en"`
	CourseDuration    *string `json:"course_duration"`
	LogoAr            string  `json:"logo_ar"`
	LogoEn            string  `json:"logo_en"`
	SemesterID        string  `json:"semester_id"`
	Index             int     `json:"index"`
	PromotionVideoURL *string `json:"promotion_video_url"`
	CreatedAt         string  `json:"created_at"`
	UpdatedAt         string  `json:"updated_at"`
	DeletedAt         *string `json:"deleted_at"`
}

type Chapter struct {
	ID        string   `json:"id"`
	TitleAr   string   `json:"title_ar"`
	TitleEn   string   `json:"title_en"`
	CourseID  string   `json:"course_id"`
	Price     *float64 `json:"price"`
	Type      string   `json:"type"`
	Index     int      `json:"index"`
	Videos    []Video  `json:"videos"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at"`
	DeletedAt *string  `json:"deleted_at"`
}

type Video struct {
	ID        string  `json:"id"`
	TitleAr   string  `json:"title_ar"`
	TitleEn   string  `json:"title_en"`
	ChapterID string  `json:"chapter_id"`
	URL       string  `json:"url"`
	Index     int     `json:"index"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
	DeletedAt *string `json:"deleted_at"`
}

type Material struct {
	ID            string  `json:"id"`
	CourseID      string  `json:"course_id"`
	TitleAr       string  `json:"title_ar"`
	TitleEn       string  `json:"title_en"`
	DescriptionAr string  `json:"description_ar"`
	DescriptionEn string  `json:"description_en"`
	FileAr        string  `json:"file_ar"`
	FileEn        string  `json:"file_en"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
	DeletedAt     *string `json:"deleted_at"`
}

type User struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Role        string  `json:"role"`
	RoleID      *string `json:"role_id"`
	Country     string  `json:"country"`
	Phone       string  `json:"phone"`
	Gender      string  `json:"gender"`
	ProjectName *string `json:"project_name"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
	DeletedAt   *string `json:"deleted_at"`
}

type Event struct {
	ID            string  `json:"id"`
	TitleAr       string  `json:"title_ar"`
	TitleEn       string  `json:"title_en"`
	DescriptionAr string  `json:"description_ar"`
	DescriptionEn string  `json:"description_en"`
	SemesterID    string  `json:"semester_id"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
	DeletedAt     *string `json:"deleted_at"`
}

type CourseRequest struct {
	ID        string  `json:"id"`
	UserID    string  `json:"user_id"`
	CourseID  string  `json:"course_id"`
	Note      *string `json:"note"`
	Status    string  `json:"status"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
	User      struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
		Phone string `json:"phone"`
	} `json:"user"`
	Course struct {
		ID     string `json:"id"`
		NameEn string `json:"name_en"`
		NameAr string `json:"name_ar"`
	} `json:"course"`
}

// Meta carries the pagination block paginated list endpoints return.
type Meta struct {
	Total           int  `json:"total"`
	Page            int  `json:"page"`
	Limit           int  `json:"limit"`
	TotalPages      int  `json:"totalPages"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

// Page is a single page of a paginated listing.
type Page[T any] struct {
	Data []T  `json:"data"`
	Meta Meta `json:"meta"`
}

// ListParams narrow paginated listings. Zero values are omitted from the
// query string.
type ListParams struct {
	Page   int
	Limit  int
	Search string
	Status string
}
