package interfaces

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"jobmatcher/auth"
	"jobmatcher/domain"
	"jobmatcher/infrastructure"
	"jobmatcher/matcher"
)

const internalErrorMessage = "An unexpected error occurred. Please try again later."

// Placeholder until feedback generation is implemented.
const matchFeedback = "Feedback will be generated based on missing skills, responsibilities, and education"

// TextExtractor converts an uploaded document into plain text.
type TextExtractor func(file io.Reader, filename string) (string, error)

// MatchPublisher announces persisted matches. Publish failures never affect
// the HTTP response.
type MatchPublisher interface {
	PublishMatch(event infrastructure.MatchEvent) error
}

type HTTPHandler struct {
	Users   domain.UserStore
	Jobs    domain.JobDescriptionStore
	Resumes domain.ResumeStore
	Matches domain.MatchStore
	Scorer  *matcher.Scorer
	Extract TextExtractor
	Tokens  *auth.TokenIssuer
	Verify  *auth.TokenVerifier
	Events  MatchPublisher
	Log     *logrus.Logger
}

func NewHTTPHandler(router *gin.Engine, h *HTTPHandler) {
	api := router.Group("/api")

	api.POST("/register", h.Register)
	api.POST("/login", h.Login)

	profile := api.Group("", h.AuthRequired())
	profile.GET("/profile", h.GetProfile)
	profile.GET("/profile/:user_id", h.GetProfile)

	api.POST("/job-description", h.UploadJobDescription)
	api.POST("/resume", h.UploadResume)
	api.POST("/match", h.CreateMatch)

	api.GET("/job-descriptions", h.ListJobDescriptions)
	api.GET("/resumes", h.ListResumes)
	api.GET("/matches", h.ListMatches)
}

// UploadJobDescription extracts text and structured attributes from an
// uploaded job description PDF and persists the record.
func (h *HTTPHandler) UploadJobDescription(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	file, err := header.Open()
	if err != nil {
		h.Log.WithError(err).Error("failed to open job description upload")
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalErrorMessage})
		return
	}
	defer file.Close()

	text, err := h.Extract(file, header.Filename)
	if err != nil {
		if errors.Is(err, domain.ErrUnsupportedFormat) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported file type"})
			return
		}
		h.Log.WithError(err).Error("failed to extract job description text")
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalErrorMessage})
		return
	}

	job := domain.JobDescription{
		Title:             matcher.ExtractTitle(text),
		Description:       text,
		RequiredSkills:    matcher.ExtractSkills(text),
		Education:         matcher.ExtractEducation(text),
		Responsibilities:  matcher.ExtractResponsibilities(text),
		YearsOfExperience: matcher.ExtractExperience(text),
		FileName:          header.Filename,
	}
	if err := h.Jobs.Create(c.Request.Context(), &job); err != nil {
		h.Log.WithError(err).Error("failed to save job description")
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalErrorMessage})
		return
	}

	c.JSON(http.StatusCreated, jobResponse(job))
}

// UploadResume extracts text and structured attributes from an uploaded
// resume PDF and persists the record.
func (h *HTTPHandler) UploadResume(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	file, err := header.Open()
	if err != nil {
		h.Log.WithError(err).Error("failed to open resume upload")
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalErrorMessage})
		return
	}
	defer file.Close()

	text, err := h.Extract(file, header.Filename)
	if err != nil {
		if errors.Is(err, domain.ErrUnsupportedFormat) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported file type"})
			return
		}
		h.Log.WithError(err).Error("failed to extract resume text")
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalErrorMessage})
		return
	}

	resume := domain.Resume{
		Name:             c.PostForm("name"),
		Skills:           matcher.ExtractSkills(text),
		Education:        matcher.ExtractEducation(text),
		Experience:       matcher.ExtractExperience(text),
		Responsibilities: matcher.ExtractResponsibilities(text),
		RawText:          text,
		FileName:         header.Filename,
	}
	if err := h.Resumes.Create(c.Request.Context(), &resume); err != nil {
		h.Log.WithError(err).Error("failed to save resume")
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalErrorMessage})
		return
	}

	c.JSON(http.StatusCreated, resumeResponse(resume))
}

// CreateMatch scores a stored job description against a stored resume,
// derives overlap diagnostics and persists the match record.
func (h *HTTPHandler) CreateMatch(c *gin.Context) {
	var req struct {
		JobDescID string `json:"job_desc_id"`
		ResumeID  string `json:"resume_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.JobDescID == "" || req.ResumeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "job_desc_id and resume_id are required"})
		return
	}

	ctx := c.Request.Context()

	job, err := h.Jobs.FindByID(ctx, req.JobDescID)
	if err != nil {
		h.matchLookupError(c, err)
		return
	}
	resume, err := h.Resumes.FindByID(ctx, req.ResumeID)
	if err != nil {
		h.matchLookupError(c, err)
		return
	}

	score, err := h.Scorer.AnalyzeMatch(ctx,
		job.Description, resume.RawText,
		job.RequiredSkills, resume.Skills,
		job.Responsibilities, resume.Responsibilities,
	)
	if err != nil {
		h.Log.WithError(err).WithFields(logrus.Fields{
			"job_desc_id": req.JobDescID,
			"resume_id":   req.ResumeID,
		}).Error("match scoring failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalErrorMessage})
		return
	}

	jobResp := matcher.SplitResponsibilities(job.Responsibilities)
	resumeResp := matcher.SplitResponsibilities(resume.Responsibilities)

	match := domain.Match{
		JobDescID:               req.JobDescID,
		ResumeID:                req.ResumeID,
		MatchScore:              score,
		MatchedSkills:           matcher.Intersection(job.RequiredSkills, resume.Skills),
		MissingSkills:           matcher.Difference(job.RequiredSkills, resume.Skills),
		MatchedResponsibilities: matcher.Intersection(jobResp, resumeResp),
		MissingResponsibilities: matcher.Difference(jobResp, resumeResp),
		JobEducation:            job.Education,
		ResumeEducation:         resume.Education,
		EducationMatch:          matcher.EducationMatch(job.Education, resume.Education),
		Feedback:                matchFeedback,
	}
	if err := h.Matches.Create(ctx, &match); err != nil {
		h.Log.WithError(err).Error("failed to save match")
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalErrorMessage})
		return
	}

	if h.Events != nil {
		event := infrastructure.MatchEvent{
			MatchID:        formatID(match.ID),
			JobDescID:      match.JobDescID,
			ResumeID:       match.ResumeID,
			MatchScore:     match.MatchScore,
			MissingSkills:  match.MissingSkills,
			EducationMatch: match.EducationMatch,
		}
		if err := h.Events.PublishMatch(event); err != nil {
			h.Log.WithError(err).Warn("failed to publish match event")
		}
	}

	c.JSON(http.StatusOK, matchResponse(match))
}

func (h *HTTPHandler) matchLookupError(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invalid job description or resume ID"})
		return
	}
	h.Log.WithError(err).Error("failed to load match inputs")
	c.JSON(http.StatusInternalServerError, gin.H{"error": internalErrorMessage})
}

func (h *HTTPHandler) ListJobDescriptions(c *gin.Context) {
	jobs, err := h.Jobs.FindAll(c.Request.Context())
	if err != nil {
		h.Log.WithError(err).Error("failed to list job descriptions")
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalErrorMessage})
		return
	}
	out := make([]gin.H, 0, len(jobs))
	for _, job := range jobs {
		out = append(out, jobResponse(job))
	}
	c.JSON(http.StatusOK, out)
}

func (h *HTTPHandler) ListResumes(c *gin.Context) {
	resumes, err := h.Resumes.FindAll(c.Request.Context())
	if err != nil {
		h.Log.WithError(err).Error("failed to list resumes")
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalErrorMessage})
		return
	}
	out := make([]gin.H, 0, len(resumes))
	for _, resume := range resumes {
		out = append(out, resumeResponse(resume))
	}
	c.JSON(http.StatusOK, out)
}

func (h *HTTPHandler) ListMatches(c *gin.Context) {
	matches, err := h.Matches.FindAll(c.Request.Context())
	if err != nil {
		h.Log.WithError(err).Error("failed to list matches")
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalErrorMessage})
		return
	}
	out := make([]gin.H, 0, len(matches))
	for _, match := range matches {
		out = append(out, matchResponse(match))
	}
	c.JSON(http.StatusOK, out)
}

func jobResponse(job domain.JobDescription) gin.H {
	return gin.H{
		"_id":                 formatID(job.ID),
		"title":               job.Title,
		"description":         job.Description,
		"required_skills":     job.RequiredSkills,
		"education":           job.Education,
		"responsibilities":    job.Responsibilities,
		"years_of_experience": job.YearsOfExperience,
		"file":                job.FileName,
	}
}

func resumeResponse(resume domain.Resume) gin.H {
	return gin.H{
		"_id":              formatID(resume.ID),
		"name":             resume.Name,
		"skills":           resume.Skills,
		"education":        resume.Education,
		"experience":       resume.Experience,
		"responsibilities": resume.Responsibilities,
		"file":             resume.FileName,
	}
}

func matchResponse(match domain.Match) gin.H {
	return gin.H{
		"_id":                      formatID(match.ID),
		"job_desc_id":              match.JobDescID,
		"resume_id":                match.ResumeID,
		"match_score":              match.MatchScore,
		"matched_skills":           match.MatchedSkills,
		"missing_skills":           match.MissingSkills,
		"matched_responsibilities": match.MatchedResponsibilities,
		"missing_responsibilities": match.MissingResponsibilities,
		"job_education":            match.JobEducation,
		"resume_education":         match.ResumeEducation,
		"education_match":          match.EducationMatch,
		"feedback":                 match.Feedback,
	}
}

func formatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
