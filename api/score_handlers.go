package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ShreekarSeelavantula/career-compass/internal/embedding"
	"github.com/ShreekarSeelavantula/career-compass/internal/ranking"
)

// ScoreHandler scores a supplied candidate/job pair.
func (api *API) ScoreHandler(c *gin.Context) {
	input, ok := api.bindScoreInput(c)
	if !ok {
		return
	}

	scores, err := api.matching.Ranker().Score(input)
	if err != nil {
		SendServiceError(c, "scoring", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"scores":      scores,
		"match_score": scores.MatchScore(),
	})
}

// ExplainScoreHandler scores a supplied pair and explains each component.
func (api *API) ExplainScoreHandler(c *gin.Context) {
	input, ok := api.bindScoreInput(c)
	if !ok {
		return
	}

	explanation, err := api.matching.Ranker().Explain(input)
	if err != nil {
		SendServiceError(c, "scoring", err)
		return
	}
	c.JSON(http.StatusOK, explanation)
}

func (api *API) bindScoreInput(c *gin.Context) (ranking.ScoreInput, bool) {
	var req ScoreRequest
	if result := ValidateJSONBinding(c, &req); result.HasErrors() {
		SendValidationError(c, result)
		return ranking.ScoreInput{}, false
	}

	dimension := api.matching.Ranker().EmbeddingDimension()
	if result := ValidateScoreRequest(&req, dimension); result.HasErrors() {
		SendValidationError(c, result)
		return ranking.ScoreInput{}, false
	}

	candidateVec, err := api.vectorFor(c, req.CandidateEmbedding, req.CandidateText)
	if err != nil {
		SendServiceError(c, "embedding", err)
		return ranking.ScoreInput{}, false
	}
	jobVec, err := api.vectorFor(c, req.JobEmbedding, req.JobText)
	if err != nil {
		SendServiceError(c, "embedding", err)
		return ranking.ScoreInput{}, false
	}

	sameLocation := ranking.SameLocation(req.CandidateLocation, req.JobLocation)
	if req.SameLocation != nil {
		sameLocation = *req.SameLocation
	}

	return ranking.ScoreInput{
		CandidateText:      req.CandidateText,
		CandidateEmbedding: candidateVec,
		JobText:            req.JobText,
		JobEmbedding:       jobVec,
		CandidateSkills:    req.CandidateSkills,
		JobSkills:          req.JobSkills,
		CandidateExp:       req.CandidateExperience,
		JobMinExp:          req.JobMinExperience,
		SameLocation:       sameLocation,
	}, true
}

func (api *API) vectorFor(c *gin.Context, supplied []float64, text string) (embedding.Vector, error) {
	if len(supplied) > 0 {
		return supplied, nil
	}
	return api.matching.Embedder().EmbedText(c.Request.Context(), text)
}

// EmbeddingsHandler embeds a batch of texts.
func (api *API) EmbeddingsHandler(c *gin.Context) {
	var req EmbeddingsRequest
	if result := ValidateJSONBinding(c, &req); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	vectors, err := api.matching.EmbedTexts(c.Request.Context(), req.Texts)
	if err != nil {
		SendServiceError(c, "embedding", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"embeddings": vectors,
		"dimension":  api.matching.Embedder().Dimension(),
		"total":      len(vectors),
	})
}
