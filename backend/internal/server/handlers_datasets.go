package server

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/JustUsingaWebsite/carrier-relations/backend/internal/dashboard"
	"github.com/JustUsingaWebsite/carrier-relations/backend/internal/indexcache"
	"github.com/JustUsingaWebsite/carrier-relations/backend/internal/observability"
	"github.com/JustUsingaWebsite/carrier-relations/backend/internal/relindex"
	"github.com/JustUsingaWebsite/carrier-relations/backend/internal/tableio"
	"github.com/JustUsingaWebsite/carrier-relations/backend/internal/types"
)

// ExportFileName is the attachment name of exported carrier CSVs.
const ExportFileName = "carrier_export.csv"

// UploadResponse describes a freshly indexed (or already cached) dataset.
type UploadResponse struct {
	Operation string              `json:"operation"`
	Dataset   *indexcache.Dataset `json:"dataset"`
	Cached    bool                `json:"cached"`
	Stats     dashboard.Stats     `json:"stats"`
	Error     *string             `json:"error"`
}

type carrierQuery struct {
	Q              string   `form:"q"`
	Match          string   `form:"match" binding:"omitempty,oneof=exact case_insensitive"`
	BrokersTo      []string `form:"brokers_to"`
	BrokersThrough []string `form:"brokers_through"`
	Entity         []string `form:"entity"`
	Owner          []string `form:"owner"`
	Sort           string   `form:"sort" binding:"omitempty,oneof=alphabetical broker_count"`
	Order          string   `form:"order" binding:"omitempty,oneof=asc desc"`
	Limit          int      `form:"limit" binding:"gte=0"`
	Offset         int      `form:"offset" binding:"gte=0"`
}

func (q carrierQuery) request() dashboard.FilterRequest {
	return dashboard.FilterRequest{
		Operation: "filter",
		Options: dashboard.FilterOptions{
			Search:      q.Q,
			MatchMethod: dashboard.MatchMethod(q.Match),
			Selection: dashboard.Selection{
				BrokersTo:         q.BrokersTo,
				BrokersThrough:    q.BrokersThrough,
				BrokerEntityOf:    q.Entity,
				RelationshipOwner: q.Owner,
			},
		},
		Sort:       dashboard.SortOptions{Mode: dashboard.SortMode(q.Sort), Order: dashboard.SortOrder(q.Order)},
		Pagination: types.PaginationOptions{Limit: q.Limit, Offset: q.Offset},
	}
}

type relatedQuery struct {
	Value  string   `form:"value" binding:"required"`
	Fields []string `form:"field"`
	Match  string   `form:"match" binding:"omitempty,oneof=exact case_insensitive"`
}

type statsQuery struct {
	Top int `form:"top" binding:"gte=0"`
}

type graphQuery struct {
	Carriers []string `form:"carrier"`
}

type carriersBody struct {
	Carriers []string `json:"carriers" binding:"required,min=1"`
}

type sampleQuery struct {
	Format string `form:"format"`
}

// handleUpload indexes a multipart "file". The type comes from the optional
// "type" form field, else from the file name's extension.
func (s *Server) handleUpload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.Server.MaxUploadBytes)

	fh, err := c.FormFile("file")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			s.writeError(c, maxBytesErr)
			return
		}
		badRequest(c, "multipart field 'file' is required")
		return
	}

	var ft tableio.FileType
	if tag := c.PostForm("type"); tag != "" {
		ft, err = tableio.ParseFileType(tag)
	} else {
		ft, err = tableio.FileTypeFromName(fh.Filename)
	}
	if err != nil {
		s.metrics.ObserveUpload("", err)
		s.writeError(c, err)
		return
	}

	f, err := fh.Open()
	if err != nil {
		s.writeError(c, err)
		return
	}
	defer f.Close()
	raw, err := io.ReadAll(f)
	if err != nil {
		s.writeError(c, err)
		return
	}

	ds, cached, err := s.cache.Load(c.Request.Context(), raw, ft)
	s.metrics.ObserveUpload(ft, err)
	if err != nil {
		s.logger.Info("upload rejected",
			zap.String("file", fh.Filename),
			zap.String("kind", observability.ErrorKind(err)),
			zap.Error(err))
		s.writeError(c, err)
		return
	}

	s.logger.Info("dataset indexed",
		zap.String("file", fh.Filename),
		zap.String("dataset_id", ds.ID),
		zap.Bool("cached", cached),
		zap.Int("carriers", len(ds.Index.Carriers)))

	status := http.StatusCreated
	if cached {
		status = http.StatusOK
	}
	c.JSON(status, UploadResponse{
		Operation: "upload",
		Dataset:   ds,
		Cached:    cached,
		Stats:     dashboard.ComputeStats(ds.Index, 0),
	})
}

// dataset resolves the :id param or writes a 404.
func (s *Server) dataset(c *gin.Context) (*indexcache.Dataset, bool) {
	ds, err := s.cache.Get(c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return nil, false
	}
	return ds, true
}

func (s *Server) handleDataset(c *gin.Context) {
	ds, ok := s.dataset(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"dataset": ds, "rows": ds.Index.Rows})
}

func (s *Server) handleChoices(c *gin.Context) {
	ds, ok := s.dataset(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dashboard.FilterChoices(ds.Index))
}

func (s *Server) handleCarriers(c *gin.Context) {
	ds, ok := s.dataset(c)
	if !ok {
		return
	}
	var q carrierQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err.Error())
		return
	}
	res, err := dashboard.FilterCarriers(ds.Index, q.request())
	if err != nil {
		c.JSON(http.StatusBadRequest, res)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) handleCarrier(c *gin.Context) {
	ds, ok := s.dataset(c)
	if !ok {
		return
	}
	res, err := dashboard.CarrierDetails(ds.Index, dashboard.DetailsRequest{
		Operation: "details",
		Carriers:  []string{c.Param("name")},
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	if len(res.Details) == 0 || !res.Details[0].Found {
		c.JSON(http.StatusNotFound, res)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) handleDetails(c *gin.Context) {
	ds, ok := s.dataset(c)
	if !ok {
		return
	}
	var body carriersBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err.Error())
		return
	}
	res, err := dashboard.CarrierDetails(ds.Index, dashboard.DetailsRequest{Operation: "details", Carriers: body.Carriers})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) handleRelated(c *gin.Context) {
	ds, ok := s.dataset(c)
	if !ok {
		return
	}
	var q relatedQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err.Error())
		return
	}
	fields := make([]relindex.Field, 0, len(q.Fields))
	for _, f := range q.Fields {
		fields = append(fields, relindex.Field(f))
	}
	res, err := dashboard.RelatedCarriers(ds.Index, dashboard.RelatedLookupRequest{
		Operation:   "related",
		Value:       q.Value,
		Fields:      fields,
		MatchMethod: dashboard.MatchMethod(q.Match),
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, res)
		return
	}
	c.JSON(http.StatusOK, res)
}

// handleBroker lists the carriers that work with one broker, either way.
func (s *Server) handleBroker(c *gin.Context) {
	ds, ok := s.dataset(c)
	if !ok {
		return
	}
	res, err := dashboard.RelatedCarriers(ds.Index, dashboard.RelatedLookupRequest{
		Operation: "broker",
		Value:     c.Param("name"),
		Fields:    []relindex.Field{relindex.FieldBrokersTo, relindex.FieldBrokersThrough},
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, res)
		return
	}
	if len(res.Carriers) == 0 {
		c.JSON(http.StatusNotFound, res)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) handleStats(c *gin.Context) {
	ds, ok := s.dataset(c)
	if !ok {
		return
	}
	var q statsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, dashboard.ComputeStats(ds.Index, q.Top))
}

func (s *Server) handleGraph(c *gin.Context) {
	ds, ok := s.dataset(c)
	if !ok {
		return
	}
	var q graphQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err.Error())
		return
	}
	g, err := dashboard.BuildGraph(ds.Index, q.Carriers)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}

func (s *Server) handleExport(c *gin.Context) {
	ds, ok := s.dataset(c)
	if !ok {
		return
	}
	var body carriersBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err.Error())
		return
	}
	var buf bytes.Buffer
	if err := relindex.ExportCSV(&buf, ds.Index, body.Carriers); err != nil {
		s.writeError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+ExportFileName+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func (s *Server) handleSample(c *gin.Context) {
	var q sampleQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err.Error())
		return
	}
	ft := tableio.TypeCSV
	if q.Format != "" {
		var err error
		if ft, err = tableio.ParseFileType(q.Format); err != nil {
			s.writeError(c, err)
			return
		}
	}
	data, err := tableio.Sample(ft)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="carrier_sample.`+string(ft)+`"`)
	c.Data(http.StatusOK, ft.ContentType(), data)
}
