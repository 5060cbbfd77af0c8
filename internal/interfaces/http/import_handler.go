package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/cpc-api/internal/application/dto"
	"github.com/jhoicas/cpc-api/internal/application/importacion"
)

// ImportHandler recibe archivos CSV/XLSX de catálogos e histórico. Requiere importar_datos.
type ImportHandler struct {
	uc       *importacion.ImportUseCase
	maxBytes int64
}

// NewImportHandler construye el handler; maxBytes limita el tamaño del archivo.
func NewImportHandler(uc *importacion.ImportUseCase, maxBytes int) *ImportHandler {
	return &ImportHandler{uc: uc, maxBytes: int64(maxBytes)}
}

// Tipos GET /api/importar/tipos
func (h *ImportHandler) Tipos(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"tipos":    importacion.Tipos(),
		"formatos": []string{importacion.FormatoCSV, importacion.FormatoXLSX},
	})
}

// Importar godoc
// @Summary      Importar datos desde CSV o Excel
// @Description  Todo el archivo se procesa en una transacción. Con solo_validar=true nada se confirma.
// @Tags         importacion
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        tipo          path      string  true   "variedades | bloques | causas | historico"
// @Param        archivo       formData  file    true   "archivo .csv o .xlsx"
// @Param        solo_validar  formData  bool    false  "validar sin guardar"
// @Success      200  {object}  dto.ImportResultado
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      413  {object}  dto.ErrorResponse
// @Router       /api/importar/{tipo} [post]
func (h *ImportHandler) Importar(c *fiber.Ctx) error {
	fh, err := c.FormFile("archivo")
	if err != nil {
		return validation(c, "archivo requerido (campo multipart 'archivo')")
	}
	if h.maxBytes > 0 && fh.Size > h.maxBytes {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(dto.ErrorResponse{
			Code:    "FILE_TOO_LARGE",
			Message: fmt.Sprintf("el archivo supera el máximo de %d bytes", h.maxBytes),
		})
	}
	f, err := fh.Open()
	if err != nil {
		return respondError(c, fmt.Errorf("abrir archivo: %w", err))
	}
	defer f.Close()

	res, err := h.uc.Importar(c.Context(), importacion.Solicitud{
		Tipo:        c.Params("tipo"),
		Archivo:     fh.Filename,
		Datos:       f,
		SoloValidar: c.FormValue("solo_validar") == "true",
		UsuarioID:   GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}
