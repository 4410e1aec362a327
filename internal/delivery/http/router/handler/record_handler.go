package handler

import (
	"log/slog"
	"net/http"

	"medcare/config"
	"medcare/internal/delivery/http/response"
	"medcare/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// defaultMaxUploadBytes caps medical record uploads when the config leaves
// blob.maxUploadBytes unset.
const defaultMaxUploadBytes = 10 << 20

// allowedRecordContentTypes lists the document types patients may upload.
var allowedRecordContentTypes = map[string]struct{}{
	"application/pdf": {},
	"image/jpeg":      {},
	"image/png":       {},
	"image/webp":      {},
	"text/plain":      {},
}

// RecordHandlerParams holds dependencies for RecordHandler, injected by Fx.
type RecordHandlerParams struct {
	fx.In

	RecordUC usecase.RecordUsecase
	Config   *config.Config
	Logger   *slog.Logger
}

// RecordHandler holds dependencies for medical record handlers.
type RecordHandler struct {
	recordUC       usecase.RecordUsecase
	maxUploadBytes int64
	logger         *slog.Logger
}

// NewRecordHandler is the constructor for RecordHandler.
func NewRecordHandler(params RecordHandlerParams) *RecordHandler {
	var maxUploadBytes int64
	if params.Config.Blob != nil {
		maxUploadBytes = params.Config.Blob.MaxUploadBytes
	}
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}

	return &RecordHandler{
		recordUC:       params.RecordUC,
		maxUploadBytes: maxUploadBytes,
		logger:         params.Logger,
	}
}

// Upload handles a patient uploading a medical record document as multipart
// form data. The file part is streamed to the blob store, never buffered whole.
func (h *RecordHandler) Upload(c echo.Context) error {
	patientID, err := getUserID(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.BadRequest(c, "MISSING_FILE", "A file part named 'file' is required")
	}

	if fileHeader.Size > h.maxUploadBytes {
		return response.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "Uploaded file exceeds the size limit", nil)
	}

	contentType := fileHeader.Header.Get(echo.HeaderContentType)
	if _, ok := allowedRecordContentTypes[contentType]; !ok {
		return response.Error(c, http.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE", "Uploaded file type is not accepted", nil)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return response.BadRequest(c, "INVALID_FILE", "Uploaded file could not be read")
	}
	defer file.Close()

	record, err := h.recordUC.Upload(c.Request().Context(), patientID, &usecase.UploadRecordInput{
		Filename:    fileHeader.Filename,
		ContentType: contentType,
		SizeBytes:   fileHeader.Size,
		Description: c.FormValue("description"),
		Content:     file,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, newMedicalRecordView(record))
}

// ListMine returns the calling patient's own records, newest first.
func (h *RecordHandler) ListMine(c echo.Context) error {
	patientID, err := getUserID(c)
	if err != nil {
		return err
	}

	records, err := h.recordUC.ListForPatient(c.Request().Context(), patientID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newMedicalRecordViews(records))
}

// ListForPatient returns one patient's records to a doctor who has treated them.
func (h *RecordHandler) ListForPatient(c echo.Context) error {
	doctorID, err := getUserID(c)
	if err != nil {
		return err
	}

	patientID, err := uuid.Parse(c.QueryParam("patient_id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "A valid patient_id query parameter is required")
	}

	records, err := h.recordUC.ListForDoctor(c.Request().Context(), doctorID, patientID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newMedicalRecordViews(records))
}

// Download returns a short-lived signed URL for the stored file. It serves
// both the patient route and the doctor route; ownership and treatment
// relationships are checked downstream.
func (h *RecordHandler) Download(c echo.Context) error {
	actorID, err := getUserID(c)
	if err != nil {
		return err
	}

	actorRole, err := getRole(c)
	if err != nil {
		return err
	}

	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid record ID")
	}

	output, err := h.recordUC.Download(c.Request().Context(), actorID, actorRole, recordID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, RecordDownloadView{
		Record:           newMedicalRecordView(output.Record),
		URL:              output.URL,
		ExpiresInSeconds: int64(output.ExpiresIn.Seconds()),
	})
}

// Review handles a doctor marking a record as reviewed.
func (h *RecordHandler) Review(c echo.Context) error {
	doctorID, err := getUserID(c)
	if err != nil {
		return err
	}

	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid record ID")
	}

	record, err := h.recordUC.Review(c.Request().Context(), doctorID, recordID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newMedicalRecordView(record))
}
