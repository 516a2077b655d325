package fakeapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// getAllCrimeLocation serves the per-area counts. The count intentionally
// goes out under "crimeCount", the spelling the real backend uses most, so
// the SDK's decode fallback stays exercised.
func (s *Server) getAllCrimeLocation(c *gin.Context) {
	entries := []gin.H{}
	for _, l := range s.store.crimeLocations() {
		entries = append(entries, gin.H{"name": l.Name, "crimeCount": l.Count})
	}
	c.JSON(http.StatusOK, gin.H{"data": entries})
}

func (s *Server) getAllCrimeReports(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"crimes": s.store.crimeReports()})
}
