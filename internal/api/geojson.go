package api

import (
	geojson "github.com/paulmach/go.geojson"

	"github.com/mr1hm/go-quake-dashboard/internal/models"
)

// pointsGeoJSON turns map coordinates into a FeatureCollection of Points.
// GeoJSON positions are [longitude, latitude].
func pointsGeoJSON(coords []models.Coordinates) ([]byte, error) {
	fc := geojson.NewFeatureCollection()
	for _, c := range coords {
		fc.AddFeature(geojson.NewPointFeature([]float64{c.Longitude, c.Latitude}))
	}
	return fc.MarshalJSON()
}

func eventsGeoJSON(events []models.Event) ([]byte, error) {
	fc := geojson.NewFeatureCollection()
	for i, e := range events {
		f := geojson.NewPointFeature([]float64{e.Longitude, e.Latitude})
		f.SetProperty("rank", i+1)
		f.SetProperty("year", e.Year)
		f.SetProperty("month", e.Month)
		f.SetProperty("magnitude", e.Magnitude)
		fc.AddFeature(f)
	}
	return fc.MarshalJSON()
}
