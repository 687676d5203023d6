package roles

// definitions is keyed by lower-cased role name.
var definitions = map[string]Role{
	"pupil": {
		Name:            "Pupil",
		LeadershipTitle: "As an excellent pupil, you enjoy being an exemplary student and reliable follower.",
		GameName:        "Standardised Game",
		Definition:      "A pupil is the foundational role for learning within a highly structured environment. A Pupil creates value by demonstrating excellence in compliance. Guided by the directive, “I must,” their core strength is following instructions with precision, a necessary skill before a player discovers their leadership style.",
		GameDescription: "Your profile suggests a need for a safe, predictable environment with clear, step-by-step guidance, where success comes from following instructions perfectly. The Standardised Game matches this perfectly. It gives you a clear path to follow, where the directive is 'I must,' allows you to focus your attention on a predictable schedule, and provides the opportunity to master given material with precision.",
		Traits:          []string{"Follows rules", "Seeks approval", "Dislikes mistakes", "Likes clear steps", "Waits for instructions"},
		Profile: []ProfileEntry{
			{Question: "What makes you excited?", Answer: "Doing the task exactly right and getting approval."},
			{Question: "What matters?", Answer: "Safety, clear instructions, and meeting expectations."},
			{Question: "A great day looks like…", Answer: "The plan is clear and there are no surprises. You follow instructions and feel proud when you finish with a tick."},
			{Question: "What you don’t like…", Answer: "Uncertainty, unclear instructions, or self-direction."},
			{Question: "Secret power", Answer: "You are excellent at following orders in an emergency."},
		},
		Color: "#7f7f7f",
	},
	"scholar": {
		Name:            "Scholar",
		LeadershipTitle: "As an academic leader, you enjoy teaching others and showing them what’s real and worth knowing.",
		GameName:        "Academic Game",
		Definition:      "A scholar is an individual who creates value by seeking truth and curating knowledge. Driven by the foundational question, “What’s this?”, their leadership begins with the pursuit of clarity. Their strength lies in connecting generations by preserving and building upon essential ideas.",
		GameDescription: "Your profile suggests a preference for clear guidance and a world of knowns, allowing you to master a subject with precision. The Academic Game matches this perfectly. It gives you a mentor-led path where you can ask and resolve 'What's this?' questions, focus your attention on a single, deep line of inquiry, and have the space to precisely curate and understand existing knowledge.",
		Traits:          []string{"Asks questions", "Seeks truth", "Dislikes rushing", "Studies deeply", "Shares knowledge"},
		Profile: []ProfileEntry{
			{Question: "What makes you excited?", Answer: "Asking big questions and finding answers."},
			{Question: "What matters?", Answer: "Clear thinking, careful work, and learning."},
			{Question: "A great day looks like…", Answer: "You wake up with a puzzle in your head. You spend hours reading, testing, and writing until the answer starts to shine."},
			{Question: "What you don’t like…", Answer: "Being rushed to finish before you’re ready."},
			{Question: "Secret power", Answer: "You help the world remember what is true."},
		},
		Color: "#1f77b4",
	},
	"servant": {
		Name:            "Servant",
		LeadershipTitle: "As a community leader, you enjoy caring for people and creating relationships and harmony.",
		GameName:        "Neoclassical Game",
		Definition:      "A servant is an individual who creates value by building trust and ensuring systems run smoothly. Driven by the question, “Can I?”, which honours established boundaries, their leadership strength is creating the stability and psychological safety that empowers a group to succeed together.",
		GameDescription: "Your profile suggests you thrive within a trusted community with clear rules, where you can take on and manage important tasks for the group. The Neoclassical Game matches this perfectly. It provides clear institutional boundaries where you can ask and resolve 'Can I?' questions, focus your attention on improving systems and processes that serve the entire community.",
		Traits:          []string{"Helps others", "Keeps order", "Dislikes chaos", "Builds trust", "Bonds groups"},
		Profile: []ProfileEntry{
			{Question: "What makes you excited?", Answer: "Helping people feel safe, welcome, and treated fairly."},
			{Question: "What matters?", Answer: "Rules, fairness, and making sure groups stay connected."},
			{Question: "A great day looks like…", Answer: "You quietly make sure everyone has what they need. By the end, the group has worked well together because of you."},
			{Question: "What you don’t like…", Answer: "Chaos, unfairness, or people breaking promises."},
			{Question: "Secret power", Answer: "You are the glue that holds people together."},
		},
		Color: "#2ca02c",
	},
	"engineer": {
		Name:            "Engineer",
		LeadershipTitle: "As a project leader, you enjoy helping everyone on the team to solve really challenging problems together.",
		GameName:        "Progressive Game",
		Definition:      "An engineer is an individual who creates value by turning ideas into reality. Driven by the practical question, “How can I?”, their leadership strength is planning, building, and delivering reliable results that move a team forward. This role is broader than just a technical profession; it is about taking ownership of the 'how.'",
		GameDescription: "Your profile suggests a desire for clear objectives and the freedom to solve real problems, balancing knowns and unknowns. The Progressive Game matches this perfectly. It gives you a clear path to follow, where the directive is \"I must.\" It allows you to focus your attention on a predictable schedule and provides the opportunity to master given material with precision.",
		Traits:          []string{"Solves problems", "Wants results", "Dislikes worksheets", "Builds with team", "Makes ideas real"},
		Profile: []ProfileEntry{
			{Question: "What makes you excited?", Answer: "Solving problems with tools and teamwork."},
			{Question: "What matters?", Answer: "Making things that work and last."},
			{Question: "A great day looks like…", Answer: "You carefully decide who to serve and which problem to solve. You test, fix, and by the end, you can proudly say, “It works!”"},
			{Question: "What you don’t like…", Answer: "Endless worksheets that don’t matter in real life."},
			{Question: "Secret power", Answer: "You make ideas real."},
		},
		Color: "#ff7f0e",
	},
	"founder": {
		Name:            "Founder",
		LeadershipTitle: "As a visionary leader, you enjoy the thrill of imagining the unimaginable and inviting others to follow.",
		GameName:        "Neotraditional Game",
		Definition:      "A founder is an individual who creates value by reimagining what is possible and pursuing new opportunities. Driven by the expansive question, “What if?”, their leadership strength is the ability to sustain uncertainty and inspire others to help build a new future.",
		GameDescription: "Your profile suggests a high level of self-trust and a comfort with the unknown, along with a strong desire to take ownership of your own ideas and their outcomes. The Neotraditional Game matches this perfectly. It gives you full control to ask and resolve 'What if?' questions, focus your attention on a wide-open space for experimentation, and have the permission to create new value from your own vision.",
		Traits:          []string{"Chases ideas", "Breaks rules", "Dislikes limits", "Takes risks", "Sees future"},
		Profile: []ProfileEntry{
			{Question: "What makes you excited?", Answer: "Chasing big ideas and trying new things."},
			{Question: "What matters?", Answer: "Freedom to experiment and taking risks."},
			{Question: "A great day looks like…", Answer: "A spark hits: you sketch, test, and tinker until your idea begins to take shape."},
			{Question: "What you don’t like…", Answer: "Being stuck in rules that stop you from exploring."},
			{Question: "Secret power", Answer: "You see the future before others do."},
		},
		Color: "#9467bd",
	},
	"artist": {
		Name:            "Artist",
		LeadershipTitle: "As a philosophical leader, you enjoy exploring boundaries and expressing meaning, beauty, and truth.",
		GameName:        "Democratic Game",
		Definition:      "An artist is an individual who creates value by exploring authenticity and giving form to the unknown. Driven by the ultimate question, “Why?”, their leadership strength is serving as a moral and aesthetic compass for society, creating works that connect us to beauty and eternal truths.",
		GameDescription: "Your profile suggests a deep trust in your own intuition and a need for unstructured freedom, where you are the ultimate judge of your own work. The Democratic Game matches this perfectly. It provides a blank canvas with near-total control where you can ask and resolve 'Why?' questions, direct your own attention without external goals, and have the freedom to create something based on your own standard of authentic expression.",
		Traits:          []string{"Creates freely", "Loves beauty", "Dislikes rules", "Shares feelings", "Shows meaning"},
		Profile: []ProfileEntry{
			{Question: "What makes you excited?", Answer: "Drawing, singing, writing, or creating something new."},
			{Question: "What matters?", Answer: "Freedom, beauty, and sharing your heart."},
			{Question: "A great day looks like…", Answer: "A picture, sound, or feeling comes to you. You follow it until it becomes real, then share it with others."},
			{Question: "What you don’t like…", Answer: "Being told there’s only one right way to do things."},
			{Question: "Secret power", Answer: "You remind people what really matters."},
		},
		Color: "#d62728",
	},
}
