// Package pulse turns three raw colour traces into a single blood-volume
// pulse waveform.
//
// Two chrominance projections are provided. [CHROM] (de Haan and Jeanne,
// 2013) combines two colour-difference signals with a ratio of channel
// deviations. [POS] (Wang et al., 2017) projects the mean-normalized
// channels onto a plane orthogonal to skin tone. Both work on local,
// centred windows so slow illumination drift is normalized away.
package pulse
