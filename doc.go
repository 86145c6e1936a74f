// Package zonechoice picks activity destinations and vehicle ownership
// levels for the households of a travel demand model run.
//
// What is in the box?
//
//	Location choice: for every discretionary episode of a schedule, a
//	logit model over all zones, restricted to destinations reachable
//	within the time between the neighbouring episodes, with optional
//	planning-district and OD constants.
//	Auto ownership: an ordered logit over 0..4+ vehicles per household,
//	driven by zone accessibility to jobs and calibrated per region.
//
// Packages:
//
//	locchoice/       Model, submodels, lane-blocked and scalar kernels
//	autoown/         auto ownership model and household records
//	utility/         per-period to/from utility tables
//	pdcube/          planning-district OD constant cubes
//	timeperiod/      time periods and their travel-time tables
//	network/         auto and transit skims, shortest paths from link files
//	landuse/         reference-counted land-use sources, CSV readers
//	zone/            zone system, flat indices, distances
//	matrix/          Dense row-major OD matrices
//	vecops/          vector kernels
//	choice/          sampling, ordered logit, seeded generators
//	clock/           minutes-of-day times and windows
//	rangeset/        range sets such as "1-46,50"
//	config/          YAML run configuration and model assembly
//	cmd/zonechoice   command line front end
//
// Both models are loaded once per iteration and then queried concurrently.
// Location-choice queries never mutate shared state; auto-ownership draws
// share one seeded generator unless the caller brings its own.
package zonechoice
